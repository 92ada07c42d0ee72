package entity

import "fmt"

// GuestStats holds the derived counters shown above the guest list.
// All fields are zero on an empty table, never null.
type GuestStats struct {
	Total               int `json:"total"`
	Confirmed           int `json:"confirmed"`
	ConfirmedCompanions int `json:"confirmed_companions"`
}

// ExpectedAttendance returns confirmed guests plus their companions.
func (s *GuestStats) ExpectedAttendance() int {
	return s.Confirmed + s.ConfirmedCompanions
}

// ConfirmationRate returns the share of guests that confirmed (0.0 to 1.0).
func (s *GuestStats) ConfirmationRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Confirmed) / float64(s.Total)
}

// String returns a short human-readable summary of the counters.
func (s *GuestStats) String() string {
	return fmt.Sprintf(
		"Guests: %d, Confirmed: %d, Companions: %d, Expected: %d",
		s.Total,
		s.Confirmed,
		s.ConfirmedCompanions,
		s.ExpectedAttendance(),
	)
}
