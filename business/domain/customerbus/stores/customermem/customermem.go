// Package customermem provides an in-memory customer store used by tests.
// It honors the same tenant filter contract as customerdb.
package customermem

import (
	"cmp"
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/sdk/memstore"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

// Store manages the set of APIs for in-memory customer access.
type Store struct {
	table *memstore.Table[customerbus.Customer]
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		table: memstore.New(
			func(c customerbus.Customer) uuid.UUID { return c.ID },
			func(c customerbus.Customer) uuid.UUID { return c.TenantID },
			memstore.Unique[customerbus.Customer]{
				Name: "uq_customer_tenant_email",
				Key: func(c customerbus.Customer) string {
					return c.TenantID.String() + "|" + strings.ToLower(c.Email.Address)
				},
			},
		),
	}
}

// NewWithTx returns the same store. The memory store has no transactions.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (customerbus.Storer, error) {
	return s, nil
}

// Create adds a customer.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, cus customerbus.Customer) error {
	return mapError(s.table.Insert(f, cus))
}

// Update replaces a customer.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, cus customerbus.Customer) error {
	_, err := s.table.Update(f, cus)
	return mapError(err)
}

// Delete removes a customer.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, cus customerbus.Customer) error {
	if err := f.CheckOwner(cus.TenantID); err != nil {
		return err
	}

	_, err := s.table.Delete(f, cus.ID)
	return mapError(err)
}

// Query returns a page of customers matching the filter.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter customerbus.QueryFilter, orderBy order.By, pg page.Page) ([]customerbus.Customer, error) {
	return s.table.Select(f, match(filter), compare(orderBy), pg)
}

// Count returns the number of customers matching the filter.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter customerbus.QueryFilter) (int, error) {
	return s.table.Count(f, match(filter))
}

// QueryByID returns the customer with the specified id.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, customerID uuid.UUID) (customerbus.Customer, error) {
	cus, err := s.table.Get(f, customerID)
	return cus, mapError(err)
}

// QueryByEmail returns the customer with the specified email.
func (s *Store) QueryByEmail(ctx context.Context, f tenancy.Filter, email mail.Address) (customerbus.Customer, error) {
	cus, err := s.table.Find(f, match(customerbus.QueryFilter{Email: &email}))
	return cus, mapError(err)
}

// =============================================================================

func match(filter customerbus.QueryFilter) func(customerbus.Customer) bool {
	return func(c customerbus.Customer) bool {
		switch {
		case filter.ID != nil && c.ID != *filter.ID:
			return false
		case filter.Name != nil && !strings.Contains(strings.ToLower(c.Name.String()), strings.ToLower(*filter.Name)):
			return false
		case filter.Email != nil && !strings.EqualFold(c.Email.Address, filter.Email.Address):
			return false
		case filter.StartCreatedAt != nil && c.CreatedAt.Before(*filter.StartCreatedAt):
			return false
		case filter.EndCreatedAt != nil && c.CreatedAt.After(*filter.EndCreatedAt):
			return false
		}

		return true
	}
}

func compare(orderBy order.By) func(a, b customerbus.Customer) int {
	var by func(a, b customerbus.Customer) int

	switch orderBy.Field {
	case customerbus.OrderByID:
		by = func(a, b customerbus.Customer) int { return cmp.Compare(a.ID.String(), b.ID.String()) }
	case customerbus.OrderByEmail:
		by = func(a, b customerbus.Customer) int { return cmp.Compare(a.Email.Address, b.Email.Address) }
	case customerbus.OrderByCreatedAt:
		by = func(a, b customerbus.Customer) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		by = func(a, b customerbus.Customer) int { return cmp.Compare(a.Name.String(), b.Name.String()) }
	}

	if orderBy.Direction == order.DESC {
		return func(a, b customerbus.Customer) int { return by(b, a) }
	}

	return by
}

func mapError(err error) error {
	var dup memstore.ErrDuplicate
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memstore.ErrNotFound):
		return customerbus.ErrNotFound
	case errors.As(err, &dup) && dup.Name == "uq_customer_tenant_email":
		return customerbus.ErrUniqueEmail
	}

	return err
}
