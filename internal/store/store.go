package store

import (
	"context"
	"errors"

	"github.com/ajitpratap0/pokedex/internal/models"
)

// ErrNotFound is returned by Update and Release when no row matched the identifier.
var ErrNotFound = errors.New("pokemon not found")

// ErrDuplicateID is returned by Insert when the identifier is already taken.
var ErrDuplicateID = errors.New("duplicate pokemon id")

// Store defines the data-access operations over the catalog table.
type Store interface {
	// EnsureTable creates the catalog table if it doesn't exist.
	EnsureTable(ctx context.Context) error

	// ListActive returns every active record in store order.
	ListActive(ctx context.Context) ([]models.Pokemon, error)

	// Insert adds a new active record. The identifier is supplied by the caller.
	Insert(ctx context.Context, p models.Pokemon) error

	// Update overwrites the mutable fields of the record with p.ID.
	// The identifier and the active flag are left untouched.
	Update(ctx context.Context, p models.Pokemon) error

	// Release soft-deletes the active record with the given identifier.
	Release(ctx context.Context, id int) error

	// Search returns active records whose name contains query, ignoring case,
	// or whose identifier contains it as text.
	Search(ctx context.Context, query string) ([]models.Pokemon, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close cleans up resources.
	Close() error
}
