package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ajitpratap0/pokedex/internal/models"
)

// MockStore is an in-memory implementation of Store for testing.
// Rows keep insertion order, like a heap table without ORDER BY.
type MockStore struct {
	mu    sync.RWMutex
	rows  []models.Pokemon
	index map[int]int
}

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		index: make(map[int]int),
	}
}

// EnsureTable is a no-op for the mock store.
func (m *MockStore) EnsureTable(_ context.Context) error {
	return nil
}

// ListActive returns active rows in insertion order.
func (m *MockStore) ListActive(_ context.Context) ([]models.Pokemon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Pokemon, 0, len(m.rows))
	for _, p := range m.rows {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

// Insert appends an active row, failing with ErrDuplicateID when the id is taken
// by any row, active or not.
func (m *MockStore) Insert(_ context.Context, p models.Pokemon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.index[p.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
	}
	p.Active = true
	m.index[p.ID] = len(m.rows)
	m.rows = append(m.rows, p)
	return nil
}

// Update overwrites the mutable fields of the row with p.ID.
func (m *MockStore) Update(_ context.Context, p models.Pokemon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[p.ID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, p.ID)
	}
	row := &m.rows[i]
	row.Name = p.Name
	row.Type = p.Type
	row.Height = p.Height
	row.Weight = p.Weight
	row.Ability = p.Ability
	return nil
}

// Release clears the active flag of the row with the given id.
func (m *MockStore) Release(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok || !m.rows[i].Active {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	m.rows[i].Active = false
	return nil
}

// Search matches active rows by lower-cased name or by identifier text.
func (m *MockStore) Search(_ context.Context, query string) ([]models.Pokemon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := lowerText(query)

	var out []models.Pokemon
	for _, p := range m.rows {
		if !p.Active {
			continue
		}
		if strings.Contains(lowerText(p.Name), q) || strings.Contains(strconv.Itoa(p.ID), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Lookup returns the row with the given id whether or not it is active.
func (m *MockStore) Lookup(id int) (models.Pokemon, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[id]
	if !ok {
		return models.Pokemon{}, false
	}
	return m.rows[i], true
}

// Len returns the number of physical rows, released ones included.
func (m *MockStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

// Ping is a no-op for the mock store.
func (m *MockStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}
