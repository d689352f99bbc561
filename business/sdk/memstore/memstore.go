// Package memstore provides an in-memory table of tenant owned rows. It
// backs the in-memory stores used in place of the database in tests and
// applies the same tenant filter contract the database stores do.
package memstore

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

// ErrNotFound is returned when no visible row matches.
var ErrNotFound = errors.New("row not found")

// ErrDuplicate reports a unique constraint violation. Name holds the
// constraint that was hit.
type ErrDuplicate struct {
	Name string
}

// Error implements the error interface.
func (e ErrDuplicate) Error() string {
	return fmt.Sprintf("duplicated entry: %s", e.Name)
}

// Unique describes a unique constraint over the rows of a table. Rows whose
// key is empty are not constrained.
type Unique[T any] struct {
	Name string
	Key  func(row T) string
}

// Table stores rows of type T keyed by id.
type Table[T any] struct {
	mu       sync.RWMutex
	rows     map[uuid.UUID]T
	idOf     func(T) uuid.UUID
	tenantOf func(T) uuid.UUID
	uniques  []Unique[T]
}

// New constructs a table. idOf and tenantOf extract the primary key and the
// owning tenant of a row.
func New[T any](idOf func(T) uuid.UUID, tenantOf func(T) uuid.UUID, uniques ...Unique[T]) *Table[T] {
	return &Table[T]{
		rows:     make(map[uuid.UUID]T),
		idOf:     idOf,
		tenantOf: tenantOf,
		uniques:  uniques,
	}
}

// Insert adds a row owned by a tenant visible through f.
func (t *Table[T]) Insert(f tenancy.Filter, row T) error {
	if err := f.CheckOwner(t.tenantOf(row)); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(row)
	if _, exists := t.rows[id]; exists {
		return ErrDuplicate{Name: "pk"}
	}

	if err := t.checkUnique(row, id); err != nil {
		return err
	}

	t.rows[id] = row

	return nil
}

// Update replaces a visible row. The owning tenant of a row can't change.
func (t *Table[T]) Update(f tenancy.Filter, row T) (int, error) {
	if err := f.CheckOwner(t.tenantOf(row)); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.idOf(row)

	current, exists := t.rows[id]
	if !exists || !f.Allows(t.tenantOf(current)) {
		return 0, ErrNotFound
	}

	if t.tenantOf(current) != t.tenantOf(row) {
		return 0, fmt.Errorf("reassign owner: %w", tenancy.ErrCrossTenant)
	}

	if err := t.checkUnique(row, id); err != nil {
		return 0, err
	}

	t.rows[id] = row

	return 1, nil
}

// Delete removes a visible row.
func (t *Table[T]) Delete(f tenancy.Filter, id uuid.UUID) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current, exists := t.rows[id]
	if !exists || !f.Allows(t.tenantOf(current)) {
		return 0, ErrNotFound
	}

	delete(t.rows, id)

	return 1, nil
}

// Get returns the visible row with the specified id.
func (t *Table[T]) Get(f tenancy.Filter, id uuid.UUID) (T, error) {
	var zero T

	if err := f.Validate(); err != nil {
		return zero, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	row, exists := t.rows[id]
	if !exists || !f.Allows(t.tenantOf(row)) {
		return zero, ErrNotFound
	}

	return row, nil
}

// Find returns the first visible row matching the predicate.
func (t *Table[T]) Find(f tenancy.Filter, match func(T) bool) (T, error) {
	var zero T

	rows, err := t.visible(f, match)
	if err != nil {
		return zero, err
	}

	if len(rows) == 0 {
		return zero, ErrNotFound
	}

	return rows[0], nil
}

// Select returns a page of visible rows matching the predicate, sorted by
// cmp. A nil cmp sorts by id.
func (t *Table[T]) Select(f tenancy.Filter, match func(T) bool, cmp func(a, b T) int, pg page.Page) ([]T, error) {
	rows, err := t.visible(f, match)
	if err != nil {
		return nil, err
	}

	if cmp == nil {
		cmp = func(a, b T) int {
			ia, ib := t.idOf(a), t.idOf(b)
			return bytes.Compare(ia[:], ib[:])
		}
	}

	slices.SortStableFunc(rows, cmp)

	start := min(pg.Offset(), len(rows))
	end := min(start+pg.RowsPerPage(), len(rows))

	return rows[start:end], nil
}

// Count returns the number of visible rows matching the predicate.
func (t *Table[T]) Count(f tenancy.Filter, match func(T) bool) (int, error) {
	rows, err := t.visible(f, match)
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func (t *Table[T]) visible(f tenancy.Filter, match func(T) bool) ([]T, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var rows []T
	for _, row := range t.rows {
		if !f.Allows(t.tenantOf(row)) {
			continue
		}

		if match != nil && !match(row) {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (t *Table[T]) checkUnique(row T, id uuid.UUID) error {
	for _, u := range t.uniques {
		key := u.Key(row)
		if key == "" {
			continue
		}

		for otherID, other := range t.rows {
			if otherID == id {
				continue
			}

			if u.Key(other) == key {
				return ErrDuplicate{Name: u.Name}
			}
		}
	}

	return nil
}
