// Package professionalmem provides an in-memory professional store used by
// tests.
package professionalmem

import (
	"cmp"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/sdk/memstore"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

// Store manages the set of APIs for in-memory professional access.
type Store struct {
	table *memstore.Table[professionalbus.Professional]
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		table: memstore.New(
			func(p professionalbus.Professional) uuid.UUID { return p.ID },
			func(p professionalbus.Professional) uuid.UUID { return p.TenantID },
			memstore.Unique[professionalbus.Professional]{
				Name: "uq_professional_tenant_email",
				Key: func(p professionalbus.Professional) string {
					return p.TenantID.String() + "|" + strings.ToLower(p.Email.Address)
				},
			},
		),
	}
}

// NewWithTx returns the same store. The memory store has no transactions.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (professionalbus.Storer, error) {
	return s, nil
}

// Create adds a professional.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, prf professionalbus.Professional) error {
	return mapError(s.table.Insert(f, prf))
}

// Update replaces a professional.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, prf professionalbus.Professional) error {
	_, err := s.table.Update(f, prf)
	return mapError(err)
}

// Delete removes a professional.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, prf professionalbus.Professional) error {
	if err := f.CheckOwner(prf.TenantID); err != nil {
		return err
	}

	_, err := s.table.Delete(f, prf.ID)
	return mapError(err)
}

// Query returns a page of professionals matching the filter.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter professionalbus.QueryFilter, orderBy order.By, pg page.Page) ([]professionalbus.Professional, error) {
	return s.table.Select(f, match(filter), compare(orderBy), pg)
}

// Count returns the number of professionals matching the filter.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter professionalbus.QueryFilter) (int, error) {
	return s.table.Count(f, match(filter))
}

// QueryByID returns the professional with the specified id.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, professionalID uuid.UUID) (professionalbus.Professional, error) {
	prf, err := s.table.Get(f, professionalID)
	return prf, mapError(err)
}

// =============================================================================

func match(filter professionalbus.QueryFilter) func(professionalbus.Professional) bool {
	return func(p professionalbus.Professional) bool {
		switch {
		case filter.ID != nil && p.ID != *filter.ID:
			return false
		case filter.Name != nil && !containsFold(p.Name.String(), *filter.Name) && !containsFold(p.BusinessName, *filter.Name):
			return false
		case filter.Email != nil && !strings.EqualFold(p.Email.Address, filter.Email.Address):
			return false
		case filter.Specialty != nil && p.Specialty != *filter.Specialty:
			return false
		case filter.Enabled != nil && p.Enabled != *filter.Enabled:
			return false
		}

		return true
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func compare(orderBy order.By) func(a, b professionalbus.Professional) int {
	var by func(a, b professionalbus.Professional) int

	switch orderBy.Field {
	case professionalbus.OrderByID:
		by = func(a, b professionalbus.Professional) int { return cmp.Compare(a.ID.String(), b.ID.String()) }
	case professionalbus.OrderBySpecialty:
		by = func(a, b professionalbus.Professional) int {
			return cmp.Compare(a.Specialty.String(), b.Specialty.String())
		}
	case professionalbus.OrderByCreatedAt:
		by = func(a, b professionalbus.Professional) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		by = func(a, b professionalbus.Professional) int { return cmp.Compare(a.Name.String(), b.Name.String()) }
	}

	if orderBy.Direction == order.DESC {
		return func(a, b professionalbus.Professional) int { return by(b, a) }
	}

	return by
}

func mapError(err error) error {
	var dup memstore.ErrDuplicate
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memstore.ErrNotFound):
		return professionalbus.ErrNotFound
	case errors.As(err, &dup) && dup.Name == "uq_professional_tenant_email":
		return professionalbus.ErrUniqueEmail
	}

	return err
}
