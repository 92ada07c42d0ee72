package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aruizmx/invitados/config"
	"github.com/aruizmx/invitados/internal/entity"
	"github.com/aruizmx/invitados/pkg/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) GuestRepository {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:            filepath.Join(t.TempDir(), "guests.db"),
		BusyTimeout:     5000,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}

	db, err := sqlite.NewSqliteDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.RunMigrations(db))

	// Running migrations twice must be a no-op
	require.NoError(t, sqlite.RunMigrations(db))

	return NewGuestRepository(db)
}

func strPtr(s string) *string {
	return &s
}

// TestCreateFillsStorageAssignedFields checks that a created guest shows up
// in an unfiltered list with its values and defaults intact.
func TestCreateFillsStorageAssignedFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	guest := &entity.Guest{
		FirstName: "Ana",
		LastName:  "Pérez",
	}
	require.NoError(t, repo.Create(ctx, guest))

	assert.Equal(t, int64(1), guest.ID)
	assert.False(t, guest.CreatedAt.IsZero())
	assert.False(t, guest.UpdatedAt.IsZero())

	guests, err := repo.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, guests, 1)

	got := guests[0]
	assert.Equal(t, guest.ID, got.ID)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "Pérez", got.LastName)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.Email)
	assert.False(t, got.WillAttend)
	assert.Equal(t, 0, got.CompanionCount)
}

func TestUpdateMissingGuest(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Guest{FirstName: "Ana", LastName: "Pérez"}))

	err := repo.Update(ctx, &entity.Guest{
		ID:        999,
		FirstName: "Nadie",
		LastName:  "Nunca",
	})
	assert.ErrorIs(t, err, entity.ErrGuestNotFound)

	// The failed update must leave the table untouched
	guests, err := repo.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Ana", guests[0].FirstName)
}

func TestDeleteTwice(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	guest := &entity.Guest{FirstName: "Ana", LastName: "Pérez"}
	require.NoError(t, repo.Create(ctx, guest))

	require.NoError(t, repo.Delete(ctx, guest.ID))

	err := repo.Delete(ctx, guest.ID)
	assert.ErrorIs(t, err, entity.ErrGuestNotFound)

	_, err = repo.GetByID(ctx, guest.ID)
	assert.ErrorIs(t, err, entity.ErrGuestNotFound)
}

// TestUpdatedAtRefreshedByTrigger verifies the updated_at invariant: the
// UPDATE statement never sets the column, yet it moves forward anyway.
func TestUpdatedAtRefreshedByTrigger(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	guest := &entity.Guest{FirstName: "Ana", LastName: "Pérez"}
	require.NoError(t, repo.Create(ctx, guest))
	createdAt := guest.CreatedAt
	createdUpdatedAt := guest.UpdatedAt

	// CURRENT_TIMESTAMP has second resolution
	time.Sleep(1100 * time.Millisecond)

	guest.CompanionCount = 3
	require.NoError(t, repo.Update(ctx, guest))

	assert.True(t, guest.UpdatedAt.After(createdUpdatedAt),
		"updated_at %v should be after %v", guest.UpdatedAt, createdUpdatedAt)
	assert.Equal(t, createdAt, guest.CreatedAt, "created_at must never change")

	// Reads must not touch updated_at
	_, err := repo.Stats(ctx)
	require.NoError(t, err)
	guests, err := repo.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, guest.UpdatedAt, guests[0].UpdatedAt)
}

func TestStatsOnEmptyTable(t *testing.T) {
	repo := newTestRepository(t)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Confirmed)
	assert.Equal(t, 0, stats.ConfirmedCompanions)
}

// TestListFilteringAndOrdering walks through the two-guest scenario: list
// ordering, case-insensitive filtering across all four text columns, the
// confirmed-only restriction and the stats counters after an update.
func TestListFilteringAndOrdering(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ana := &entity.Guest{FirstName: "Ana", LastName: "Pérez"}
	require.NoError(t, repo.Create(ctx, ana))

	luis := &entity.Guest{
		FirstName:      "Luis",
		LastName:       "Gómez",
		Phone:          strPtr("555"),
		Email:          strPtr("l@x.com"),
		WillAttend:     true,
		CompanionCount: 2,
	}
	require.NoError(t, repo.Create(ctx, luis))

	assert.Equal(t, int64(1), ana.ID)
	assert.Equal(t, int64(2), luis.ID)

	// Unfiltered list is ordered by last name: Gómez before Pérez
	guests, err := repo.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.Equal(t, luis.ID, guests[0].ID)
	assert.Equal(t, ana.ID, guests[1].ID)

	filters := []struct {
		name    string
		filter  string
		wantIDs []int64
	}{
		{name: "first name, lower case", filter: "ana", wantIDs: []int64{ana.ID}},
		{name: "first name, upper case", filter: "ANA", wantIDs: []int64{ana.ID}},
		{name: "last name substring", filter: "mez", wantIDs: []int64{luis.ID}},
		{name: "phone substring", filter: "55", wantIDs: []int64{luis.ID}},
		{name: "email substring", filter: "l@x", wantIDs: []int64{luis.ID}},
		{name: "no match", filter: "zzz", wantIDs: nil},
		{name: "whitespace only matches all", filter: "   ", wantIDs: []int64{luis.ID, ana.ID}},
	}

	for _, tt := range filters {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter, false)
			require.NoError(t, err)
			require.Len(t, got, len(tt.wantIDs))
			for i, id := range tt.wantIDs {
				assert.Equal(t, id, got[i].ID)
			}
		})
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &entity.GuestStats{Total: 2, Confirmed: 1, ConfirmedCompanions: 2}, stats)

	// Confirm Ana with one companion
	ana.WillAttend = true
	ana.CompanionCount = 1
	require.NoError(t, repo.Update(ctx, ana))

	confirmed, err := repo.List(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, confirmed, 2)

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &entity.GuestStats{Total: 2, Confirmed: 2, ConfirmedCompanions: 3}, stats)
}

// TestSameLastNameTieBreak checks the id DESC tie-break that surfaces the
// newest entry first among guests with identical names.
func TestSameLastNameTieBreak(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	older := &entity.Guest{FirstName: "María", LastName: "López"}
	require.NoError(t, repo.Create(ctx, older))
	newer := &entity.Guest{FirstName: "María", LastName: "López"}
	require.NoError(t, repo.Create(ctx, newer))

	guests, err := repo.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.Equal(t, newer.ID, guests[0].ID)
	assert.Equal(t, older.ID, guests[1].ID)
}

func TestUpdateClearsOptionalFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	guest := &entity.Guest{
		FirstName: "Luis",
		LastName:  "Gómez",
		Phone:     strPtr("555"),
		Email:     strPtr("l@x.com"),
	}
	require.NoError(t, repo.Create(ctx, guest))

	guest.Phone = nil
	guest.Email = nil
	require.NoError(t, repo.Update(ctx, guest))

	got, err := repo.GetByID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.Email)
}
