// Package userbus provides business access to the staff accounts of a tenant.
package userbus

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jcpaschoal/autonet/foundation/otel"
	"golang.org/x/crypto/bcrypt"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound              = errors.New("user not found")
	ErrUniqueEmail           = errors.New("email is not unique")
	ErrAuthenticationFailure = errors.New("authentication failed")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, f tenancy.Filter, usr User) error
	Update(ctx context.Context, f tenancy.Filter, usr User) error
	Delete(ctx context.Context, f tenancy.Filter, usr User) error
	Query(ctx context.Context, f tenancy.Filter, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error)
	Count(ctx context.Context, f tenancy.Filter, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, f tenancy.Filter, userID uuid.UUID) (User, error)
	QueryByEmail(ctx context.Context, f tenancy.Filter, email mail.Address) (User, error)
}

// Core manages the set of APIs for user access.
type Core struct {
	log    *logger.Logger
	storer Storer
	scope  tenancy.Scope
}

// NewCore constructs an unscoped core for user api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
		scope:  tenancy.Unscoped(),
	}
}

// NewWithScope constructs a new Core value bound to the tenant of the
// specified request scope.
func (c *Core) NewWithScope(tc *tenancy.Context) *Core {
	return &Core{
		log:    c.log,
		storer: c.storer,
		scope:  tc,
	}
}

// Bypass constructs a new Core value that spans every tenant. Login uses it
// since credentials are checked before a tenant is known.
func (c *Core) Bypass() *Core {
	return &Core{
		log:    c.log,
		storer: c.storer,
		scope:  tenancy.Bypass(),
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Core{
		log:    c.log,
		storer: storer,
		scope:  c.scope,
	}, nil
}

// Create adds a new user to the system.
func (c *Core) Create(ctx context.Context, nu NewUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.create")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	if err := f.CheckOwner(nu.TenantID); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password.String()), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	now := time.Now()

	usr := User{
		ID:           uuid.New(),
		TenantID:     nu.TenantID,
		Name:         nu.Name,
		Email:        nu.Email,
		PasswordHash: hash,
		Role:         nu.Role,
		Phone:        nu.Phone,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storer.Create(ctx, f, usr); err != nil {
		return User{}, fmt.Errorf("create: %w", err)
	}

	return usr, nil
}

// Update modifies information about a user.
func (c *Core) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.update")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return User{}, fmt.Errorf("update: %w", err)
	}

	if uu.Name != nil {
		usr.Name = *uu.Name
	}

	if uu.Email != nil {
		usr.Email = *uu.Email
	}

	if uu.Role != nil {
		usr.Role = *uu.Role
	}

	if uu.Password != nil {
		pw, err := bcrypt.GenerateFromPassword([]byte(uu.Password.String()), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("generatefrompassword: %w", err)
		}
		usr.PasswordHash = pw
	}

	if uu.Phone != nil {
		usr.Phone = *uu.Phone
	}

	if uu.Enabled != nil {
		usr.Enabled = *uu.Enabled
	}

	usr.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, f, usr); err != nil {
		return User{}, fmt.Errorf("update: %w", err)
	}

	return usr, nil
}

// Delete removes the specified user.
func (c *Core) Delete(ctx context.Context, usr User) error {
	ctx, span := otel.AddSpan(ctx, "business.userbus.delete")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if err := c.storer.Delete(ctx, f, usr); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing users.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.query")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	users, err := c.storer.Query(ctx, f, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return users, nil
}

// Count returns the total number of users.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.count")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return c.storer.Count(ctx, f, filter)
}

// QueryByID finds the user by the specified ID.
func (c *Core) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.querybyid")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return User{}, fmt.Errorf("query: %w", err)
	}

	user, err := c.storer.QueryByID(ctx, f, userID)
	if err != nil {
		return User{}, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return user, nil
}

// QueryByEmail finds the user by a specified user email.
func (c *Core) QueryByEmail(ctx context.Context, email mail.Address) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.querybyemail")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return User{}, fmt.Errorf("query: %w", err)
	}

	user, err := c.storer.QueryByEmail(ctx, f, email)
	if err != nil {
		return User{}, fmt.Errorf("query: email[%s]: %w", email.Address, err)
	}

	return user, nil
}

// Authenticate finds a user by their email and verifies their password. On
// success it returns the user, whose tenant is carried in the issued claims.
// Disabled users and unknown emails fail the same way a wrong password does.
func (c *Core) Authenticate(ctx context.Context, email mail.Address, password string) (User, error) {
	ctx, span := otel.AddSpan(ctx, "business.userbus.authenticate")
	defer span.End()

	usr, err := c.QueryByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, fmt.Errorf("authenticate: %w", ErrAuthenticationFailure)
		}
		return User{}, fmt.Errorf("authenticate: %w", err)
	}

	if !usr.Enabled {
		return User{}, fmt.Errorf("authenticate: disabled: %w", ErrAuthenticationFailure)
	}

	if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(password)); err != nil {
		return User{}, fmt.Errorf("comparehashandpassword: %w", ErrAuthenticationFailure)
	}

	return usr, nil
}
