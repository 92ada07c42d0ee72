package entity

import (
	"time"
)

// Guest represents one invited person with attendance metadata.
// Phone and Email are nil when the guest gave no contact info.
type Guest struct {
	ID             int64     `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Phone          *string   `json:"phone" db:"phone"`
	Email          *string   `json:"email" db:"email"`
	WillAttend     bool      `json:"will_attend" db:"will_attend"`
	CompanionCount int       `json:"companion_count" db:"companion_count"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
