// Package usermem provides an in-memory user store used by tests.
package usermem

import (
	"cmp"
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/sdk/memstore"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

// Store manages the set of APIs for in-memory user access.
type Store struct {
	table *memstore.Table[userbus.User]
}

// NewStore constructs an empty in-memory store. Emails are unique across
// every tenant since they identify the account at login.
func NewStore() *Store {
	return &Store{
		table: memstore.New(
			func(u userbus.User) uuid.UUID { return u.ID },
			func(u userbus.User) uuid.UUID { return u.TenantID },
			memstore.Unique[userbus.User]{
				Name: "uq_user_email",
				Key:  func(u userbus.User) string { return strings.ToLower(u.Email.Address) },
			},
		),
	}
}

// NewWithTx returns the same store. The memory store has no transactions.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

// Create adds a user.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, usr userbus.User) error {
	return mapError(s.table.Insert(f, usr))
}

// Update replaces a user.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, usr userbus.User) error {
	_, err := s.table.Update(f, usr)
	return mapError(err)
}

// Delete removes a user.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, usr userbus.User) error {
	if err := f.CheckOwner(usr.TenantID); err != nil {
		return err
	}

	_, err := s.table.Delete(f, usr.ID)
	return mapError(err)
}

// Query returns a page of users matching the filter.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter userbus.QueryFilter, orderBy order.By, pg page.Page) ([]userbus.User, error) {
	return s.table.Select(f, match(filter), compare(orderBy), pg)
}

// Count returns the number of users matching the filter.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter userbus.QueryFilter) (int, error) {
	return s.table.Count(f, match(filter))
}

// QueryByID returns the user with the specified id.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, userID uuid.UUID) (userbus.User, error) {
	usr, err := s.table.Get(f, userID)
	return usr, mapError(err)
}

// QueryByEmail returns the user with the specified email.
func (s *Store) QueryByEmail(ctx context.Context, f tenancy.Filter, email mail.Address) (userbus.User, error) {
	usr, err := s.table.Find(f, match(userbus.QueryFilter{Email: &email}))
	return usr, mapError(err)
}

// =============================================================================

func match(filter userbus.QueryFilter) func(userbus.User) bool {
	return func(u userbus.User) bool {
		switch {
		case filter.ID != nil && u.ID != *filter.ID:
			return false
		case filter.Name != nil && !strings.Contains(strings.ToLower(u.Name.String()), strings.ToLower(*filter.Name)):
			return false
		case filter.Email != nil && !strings.EqualFold(u.Email.Address, filter.Email.Address):
			return false
		case filter.Role != nil && !u.Role.Equal(*filter.Role):
			return false
		case filter.StartCreatedAt != nil && u.CreatedAt.Before(*filter.StartCreatedAt):
			return false
		case filter.EndCreatedAt != nil && u.CreatedAt.After(*filter.EndCreatedAt):
			return false
		}

		return true
	}
}

func compare(orderBy order.By) func(a, b userbus.User) int {
	var by func(a, b userbus.User) int

	switch orderBy.Field {
	case userbus.OrderByName:
		by = func(a, b userbus.User) int { return cmp.Compare(a.Name.String(), b.Name.String()) }
	case userbus.OrderByEmail:
		by = func(a, b userbus.User) int { return cmp.Compare(a.Email.Address, b.Email.Address) }
	case userbus.OrderByRole:
		by = func(a, b userbus.User) int { return cmp.Compare(a.Role.String(), b.Role.String()) }
	case userbus.OrderByEnabled:
		by = func(a, b userbus.User) int {
			switch {
			case a.Enabled == b.Enabled:
				return 0
			case a.Enabled:
				return 1
			}
			return -1
		}
	default:
		by = func(a, b userbus.User) int { return cmp.Compare(a.ID.String(), b.ID.String()) }
	}

	if orderBy.Direction == order.DESC {
		return func(a, b userbus.User) int { return by(b, a) }
	}

	return by
}

func mapError(err error) error {
	var dup memstore.ErrDuplicate
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memstore.ErrNotFound):
		return userbus.ErrNotFound
	case errors.As(err, &dup) && dup.Name == "uq_user_email":
		return userbus.ErrUniqueEmail
	}

	return err
}
