package repository

import (
	"context"

	"github.com/aruizmx/invitados/internal/entity"
)

type GuestRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, guest *entity.Guest) error
	GetByID(ctx context.Context, id int64) (*entity.Guest, error)
	Update(ctx context.Context, guest *entity.Guest) error
	Delete(ctx context.Context, id int64) error

	// Query operations
	List(ctx context.Context, textFilter string, confirmedOnly bool) ([]*entity.Guest, error)

	// Statistical operations
	Stats(ctx context.Context) (*entity.GuestStats, error)
}
