package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aruizmx/invitados/internal/entity"
)

type guestRepository struct {
	db *sql.DB
}

func NewGuestRepository(db *sql.DB) GuestRepository {
	return &guestRepository{db: db}
}

// Create inserts a new guest and fills in the storage-assigned fields.
// created_at and updated_at come from the table defaults, not the caller.
func (r *guestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	query := `
		INSERT INTO guests (first_name, last_name, phone, email, will_attend, companion_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		guest.FirstName,
		guest.LastName,
		nullableString(guest.Phone),
		nullableString(guest.Email),
		boolToInt(guest.WillAttend),
		guest.CompanionCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create guest: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted guest id: %w", err)
	}
	guest.ID = id

	query = `SELECT created_at, updated_at FROM guests WHERE id = ?`
	err = r.db.QueryRowContext(ctx, query, id).Scan(&guest.CreatedAt, &guest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to read back guest timestamps: %w", err)
	}

	return nil
}

// GetByID retrieves a guest by its ID
func (r *guestRepository) GetByID(ctx context.Context, id int64) (*entity.Guest, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, will_attend, companion_count, created_at, updated_at
		FROM guests
		WHERE id = ?
	`

	guest, err := scanGuest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	return guest, nil
}

// Update replaces the editable fields of the row matching guest.ID.
// updated_at is left to the trigger so the refresh never depends on the caller.
func (r *guestRepository) Update(ctx context.Context, guest *entity.Guest) error {
	query := `
		UPDATE guests
		SET first_name = ?, last_name = ?, phone = ?, email = ?,
		    will_attend = ?, companion_count = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		guest.FirstName,
		guest.LastName,
		nullableString(guest.Phone),
		nullableString(guest.Email),
		boolToInt(guest.WillAttend),
		guest.CompanionCount,
		guest.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update guest: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrGuestNotFound
	}

	query = `SELECT created_at, updated_at FROM guests WHERE id = ?`
	err = r.db.QueryRowContext(ctx, query, guest.ID).Scan(&guest.CreatedAt, &guest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to read back guest timestamps: %w", err)
	}

	return nil
}

func (r *guestRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM guests WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrGuestNotFound
	}

	return nil
}

// List returns guests matching the quick-search filter, ordered by
// last name, first name, then newest id first among same-name rows.
// The substring match is case-insensitive and spans first name, last
// name, phone and email; an empty filter matches every row.
func (r *guestRepository) List(ctx context.Context, textFilter string, confirmedOnly bool) ([]*entity.Guest, error) {
	pattern := "%"
	if trimmed := strings.TrimSpace(textFilter); trimmed != "" {
		pattern = "%" + trimmed + "%"
	}

	query := `
		SELECT id, first_name, last_name, phone, email, will_attend, companion_count, created_at, updated_at
		FROM guests
		WHERE (first_name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR email LIKE ?)
	`
	args := []interface{}{pattern, pattern, pattern, pattern}

	if confirmedOnly {
		query += ` AND will_attend = 1`
	}
	query += ` ORDER BY last_name ASC, first_name ASC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	var guests []*entity.Guest
	for rows.Next() {
		guest, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, guest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guests: %w", err)
	}

	return guests, nil
}

// Stats computes all counters in a single pass over the table.
func (r *guestRepository) Stats(ctx context.Context) (*entity.GuestStats, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN will_attend = 1 THEN 1 ELSE 0 END), 0) as confirmed,
			COALESCE(SUM(CASE WHEN will_attend = 1 THEN companion_count ELSE 0 END), 0) as confirmed_companions
		FROM guests
	`

	var stats entity.GuestStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Confirmed,
		&stats.ConfirmedCompanions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest stats: %w", err)
	}

	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanGuest converts one row into an entity.Guest, mapping the stored
// 0/1 attendance flag and NULLable contact columns at the storage edge.
func scanGuest(row rowScanner) (*entity.Guest, error) {
	var guest entity.Guest
	var phone, email sql.NullString
	var willAttend int

	err := row.Scan(
		&guest.ID,
		&guest.FirstName,
		&guest.LastName,
		&phone,
		&email,
		&willAttend,
		&guest.CompanionCount,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		guest.Phone = &phone.String
	}
	if email.Valid {
		guest.Email = &email.String
	}
	guest.WillAttend = willAttend == 1

	return &guest, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
