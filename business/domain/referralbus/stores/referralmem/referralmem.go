// Package referralmem provides an in-memory referral store used by tests.
package referralmem

import (
	"cmp"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/sdk/memstore"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

// Store manages the set of APIs for in-memory referral access.
type Store struct {
	table *memstore.Table[referralbus.Referral]
}

// NewStore constructs an empty in-memory store. Codes are unique across
// every tenant, as they are in the database.
func NewStore() *Store {
	return &Store{
		table: memstore.New(
			func(r referralbus.Referral) uuid.UUID { return r.ID },
			func(r referralbus.Referral) uuid.UUID { return r.TenantID },
			memstore.Unique[referralbus.Referral]{
				Name: "uq_referral_code",
				Key:  func(r referralbus.Referral) string { return r.Code },
			},
		),
	}
}

// NewWithTx returns the same store. The memory store has no transactions.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (referralbus.Storer, error) {
	return s, nil
}

// Create adds a referral.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, ref referralbus.Referral) error {
	return mapError(s.table.Insert(f, ref))
}

// Update replaces a referral.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, ref referralbus.Referral) error {
	_, err := s.table.Update(f, ref)
	return mapError(err)
}

// Delete removes a referral.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, ref referralbus.Referral) error {
	if err := f.CheckOwner(ref.TenantID); err != nil {
		return err
	}

	_, err := s.table.Delete(f, ref.ID)
	return mapError(err)
}

// Query returns a page of referrals matching the filter.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter referralbus.QueryFilter, orderBy order.By, pg page.Page) ([]referralbus.Referral, error) {
	return s.table.Select(f, match(filter), compare(orderBy), pg)
}

// Count returns the number of referrals matching the filter.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter referralbus.QueryFilter) (int, error) {
	return s.table.Count(f, match(filter))
}

// QueryByID returns the referral with the specified id.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, referralID uuid.UUID) (referralbus.Referral, error) {
	ref, err := s.table.Get(f, referralID)
	return ref, mapError(err)
}

// QueryByCode returns the referral with the specified code.
func (s *Store) QueryByCode(ctx context.Context, f tenancy.Filter, code string) (referralbus.Referral, error) {
	ref, err := s.table.Find(f, match(referralbus.QueryFilter{Code: &code}))
	return ref, mapError(err)
}

// =============================================================================

func match(filter referralbus.QueryFilter) func(referralbus.Referral) bool {
	return func(r referralbus.Referral) bool {
		switch {
		case filter.ID != nil && r.ID != *filter.ID:
			return false
		case filter.Code != nil && r.Code != *filter.Code:
			return false
		case filter.ReferrerID != nil && r.ReferrerID != *filter.ReferrerID:
			return false
		case filter.ProfessionalID != nil && r.ProfessionalID != *filter.ProfessionalID:
			return false
		case filter.Status != nil && !r.Status.Equal(*filter.Status):
			return false
		case filter.StartCreatedAt != nil && r.CreatedAt.Before(*filter.StartCreatedAt):
			return false
		case filter.EndCreatedAt != nil && r.CreatedAt.After(*filter.EndCreatedAt):
			return false
		}

		return true
	}
}

func compare(orderBy order.By) func(a, b referralbus.Referral) int {
	var by func(a, b referralbus.Referral) int

	switch orderBy.Field {
	case referralbus.OrderByID:
		by = func(a, b referralbus.Referral) int { return cmp.Compare(a.ID.String(), b.ID.String()) }
	case referralbus.OrderByCode:
		by = func(a, b referralbus.Referral) int { return cmp.Compare(a.Code, b.Code) }
	case referralbus.OrderByStatus:
		by = func(a, b referralbus.Referral) int { return cmp.Compare(a.Status.String(), b.Status.String()) }
	default:
		by = func(a, b referralbus.Referral) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}

	if orderBy.Direction == order.DESC {
		return func(a, b referralbus.Referral) int { return by(b, a) }
	}

	return by
}

func mapError(err error) error {
	var dup memstore.ErrDuplicate
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memstore.ErrNotFound):
		return referralbus.ErrNotFound
	case errors.As(err, &dup) && dup.Name == "uq_referral_code":
		return referralbus.ErrUniqueCode
	}

	return err
}
