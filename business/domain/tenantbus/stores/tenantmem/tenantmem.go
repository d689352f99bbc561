// Package tenantmem provides an in-memory tenant store used by tests.
package tenantmem

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/memstore"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/slug"
)

// Store manages the set of APIs for in-memory tenant access.
type Store struct {
	table *memstore.Table[tenantbus.Tenant]
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	id := func(t tenantbus.Tenant) uuid.UUID { return t.ID }

	return &Store{
		table: memstore.New(id, id, memstore.Unique[tenantbus.Tenant]{
			Name: "uq_tenant_slug",
			Key:  func(t tenantbus.Tenant) string { return t.Slug.String() },
		}),
	}
}

// NewWithTx returns the same store. The memory store has no transactions.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

// Create adds a tenant.
func (s *Store) Create(ctx context.Context, t tenantbus.Tenant) error {
	if err := s.table.Insert(all(), t); err != nil {
		return mapError(err)
	}

	return nil
}

// Update replaces a tenant.
func (s *Store) Update(ctx context.Context, t tenantbus.Tenant) error {
	if _, err := s.table.Update(all(), t); err != nil {
		return mapError(err)
	}

	return nil
}

// Delete removes a tenant.
func (s *Store) Delete(ctx context.Context, t tenantbus.Tenant) error {
	if _, err := s.table.Delete(all(), t.ID); err != nil {
		return mapError(err)
	}

	return nil
}

// Query returns a page of tenants matching the filter.
func (s *Store) Query(ctx context.Context, filter tenantbus.QueryFilter, orderBy order.By, pg page.Page) ([]tenantbus.Tenant, error) {
	return s.table.Select(all(), match(filter), compare(orderBy), pg)
}

// Count returns the number of tenants matching the filter.
func (s *Store) Count(ctx context.Context, filter tenantbus.QueryFilter) (int, error) {
	return s.table.Count(all(), match(filter))
}

// QueryByID returns the tenant with the specified id.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	t, err := s.table.Get(all(), tenantID)
	if err != nil {
		return tenantbus.Tenant{}, mapError(err)
	}

	return t, nil
}

// QueryBySlug returns the tenant with the specified slug.
func (s *Store) QueryBySlug(ctx context.Context, slg slug.Slug) (tenantbus.Tenant, error) {
	t, err := s.table.Find(all(), func(t tenantbus.Tenant) bool { return t.Slug == slg })
	if err != nil {
		return tenantbus.Tenant{}, mapError(err)
	}

	return t, nil
}

// =============================================================================

// all returns the filter for the tenants table, which isn't tenant owned.
func all() tenancy.Filter {
	f, _ := tenancy.Bypass().Filter()
	return f
}

func match(filter tenantbus.QueryFilter) func(tenantbus.Tenant) bool {
	return func(t tenantbus.Tenant) bool {
		switch {
		case filter.ID != nil && t.ID != *filter.ID:
			return false
		case filter.Slug != nil && t.Slug != *filter.Slug:
			return false
		case filter.Name != nil && !strings.Contains(strings.ToLower(t.Name.String()), strings.ToLower(*filter.Name)):
			return false
		case filter.Status != nil && t.Status != *filter.Status:
			return false
		}

		return true
	}
}

func compare(orderBy order.By) func(a, b tenantbus.Tenant) int {
	var by func(a, b tenantbus.Tenant) int

	switch orderBy.Field {
	case tenantbus.OrderByID:
		by = func(a, b tenantbus.Tenant) int { return cmp.Compare(a.ID.String(), b.ID.String()) }
	case tenantbus.OrderByName:
		by = func(a, b tenantbus.Tenant) int { return cmp.Compare(a.Name.String(), b.Name.String()) }
	case tenantbus.OrderByStatus:
		by = func(a, b tenantbus.Tenant) int { return cmp.Compare(a.Status.String(), b.Status.String()) }
	case tenantbus.OrderByCreatedAt:
		by = func(a, b tenantbus.Tenant) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		by = func(a, b tenantbus.Tenant) int { return cmp.Compare(a.Slug.String(), b.Slug.String()) }
	}

	if orderBy.Direction == order.DESC {
		return func(a, b tenantbus.Tenant) int { return by(b, a) }
	}

	return by
}

func mapError(err error) error {
	var dup memstore.ErrDuplicate
	switch {
	case errors.As(err, &dup) && dup.Name == "uq_tenant_slug":
		return fmt.Errorf("insert: %w", tenantbus.ErrUniqueSlug)
	case errors.Is(err, memstore.ErrNotFound):
		return fmt.Errorf("lookup: %w", tenantbus.ErrNotFound)
	}

	return err
}
