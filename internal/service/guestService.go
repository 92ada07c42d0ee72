package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	repository "github.com/aruizmx/invitados/internal/database/sqlite"
	"github.com/aruizmx/invitados/internal/entity"
)

// GuestRequest represents the data needed to create or update a guest.
// companion_count is bounded here the same way the entry form bounds it;
// storage itself only requires it to be non-negative.
type GuestRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=255"`
	LastName       string `json:"last_name" binding:"required,max=255"`
	Phone          string `json:"phone" binding:"max=50"`
	Email          string `json:"email" binding:"max=255"`
	WillAttend     bool   `json:"will_attend"`
	CompanionCount int    `json:"companion_count" binding:"min=0,max=20"`
}

type guestService struct {
	guestRepo repository.GuestRepository
}

// NewGuestService creates a new instance of GuestService
func NewGuestService(guestRepo repository.GuestRepository) GuestService {
	return &guestService{
		guestRepo: guestRepo,
	}
}

func (s *guestService) CreateGuest(ctx context.Context, req *GuestRequest) (*entity.Guest, error) {
	guest, err := guestFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}

	return guest, nil
}

func (s *guestService) GetGuest(ctx context.Context, id int64) (*entity.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return guest, nil
}

func (s *guestService) UpdateGuest(ctx context.Context, id int64, req *GuestRequest) (*entity.Guest, error) {
	guest, err := guestFromRequest(req)
	if err != nil {
		return nil, err
	}
	guest.ID = id

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, err
	}

	return guest, nil
}

func (s *guestService) DeleteGuest(ctx context.Context, id int64) error {
	return s.guestRepo.Delete(ctx, id)
}

func (s *guestService) ListGuests(ctx context.Context, textFilter string, confirmedOnly bool) ([]*entity.Guest, error) {
	guests, err := s.guestRepo.List(ctx, textFilter, confirmedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}

	return guests, nil
}

func (s *guestService) GetStats(ctx context.Context) (*entity.GuestStats, error) {
	stats, err := s.guestRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest stats: %w", err)
	}

	return stats, nil
}

// ExportCSV writes the current list result as comma-separated text with a
// header row. It is pure formatting over ListGuests.
func (s *guestService) ExportCSV(ctx context.Context, w io.Writer, textFilter string, confirmedOnly bool) error {
	guests, err := s.guestRepo.List(ctx, textFilter, confirmedOnly)
	if err != nil {
		return fmt.Errorf("failed to list guests for export: %w", err)
	}

	writer := csv.NewWriter(w)

	header := []string{"id", "first_name", "last_name", "phone", "email", "will_attend", "companion_count", "created_at", "updated_at"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, guest := range guests {
		record := []string{
			strconv.FormatInt(guest.ID, 10),
			guest.FirstName,
			guest.LastName,
			stringOrEmpty(guest.Phone),
			stringOrEmpty(guest.Email),
			strconv.FormatBool(guest.WillAttend),
			strconv.Itoa(guest.CompanionCount),
			guest.CreatedAt.Format(time.RFC3339),
			guest.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}

// guestFromRequest trims every string field and normalizes empty optional
// fields to nil so they reach storage as NULL. Names that trim to empty
// are rejected before anything touches the store.
func guestFromRequest(req *GuestRequest) (*entity.Guest, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, entity.ErrNameRequired
	}

	return &entity.Guest{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          optionalString(req.Phone),
		Email:          optionalString(req.Email),
		WillAttend:     req.WillAttend,
		CompanionCount: req.CompanionCount,
	}, nil
}

func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
