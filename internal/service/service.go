package service

import (
	"context"
	"io"

	"github.com/aruizmx/invitados/internal/entity"
)

// GuestService defines the operations the presentation layer calls.
type GuestService interface {
	// Basic operations
	CreateGuest(ctx context.Context, req *GuestRequest) (*entity.Guest, error)
	GetGuest(ctx context.Context, id int64) (*entity.Guest, error)
	UpdateGuest(ctx context.Context, id int64, req *GuestRequest) (*entity.Guest, error)
	DeleteGuest(ctx context.Context, id int64) error

	// Search and listing
	ListGuests(ctx context.Context, textFilter string, confirmedOnly bool) ([]*entity.Guest, error)

	// Statistics and export
	GetStats(ctx context.Context) (*entity.GuestStats, error)
	ExportCSV(ctx context.Context, w io.Writer, textFilter string, confirmedOnly bool) error
}
