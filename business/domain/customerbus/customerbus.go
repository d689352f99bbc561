// Package customerbus provides business access to the customer domain.
package customerbus

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
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound    = errors.New("customer not found")
	ErrUniqueEmail = errors.New("email is not unique")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Every call carries the tenant filter to apply.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, f tenancy.Filter, cus Customer) error
	Update(ctx context.Context, f tenancy.Filter, cus Customer) error
	Delete(ctx context.Context, f tenancy.Filter, cus Customer) error
	Query(ctx context.Context, f tenancy.Filter, filter QueryFilter, orderBy order.By, page page.Page) ([]Customer, error)
	Count(ctx context.Context, f tenancy.Filter, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, f tenancy.Filter, customerID uuid.UUID) (Customer, error)
	QueryByEmail(ctx context.Context, f tenancy.Filter, email mail.Address) (Customer, error)
}

// Core manages the set of APIs for customer access.
type Core struct {
	log    *logger.Logger
	storer Storer
	scope  tenancy.Scope
}

// NewCore constructs a core for customer api access. The core is unscoped
// until NewWithScope or Bypass is called; until then every operation fails
// with tenancy.ErrContextNotReady.
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

// Bypass constructs a new Core value that spans every tenant. Only
// infrastructure work such as seeding and admin tooling may use it.
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
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return &Core{
		log:    c.log,
		storer: storer,
		scope:  c.scope,
	}, nil
}

// Create adds a new customer owned by nc.TenantID.
func (c *Core) Create(ctx context.Context, nc NewCustomer) (Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.create")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Customer{}, fmt.Errorf("create: %w", err)
	}

	if err := f.CheckOwner(nc.TenantID); err != nil {
		return Customer{}, fmt.Errorf("create: %w", err)
	}

	now := time.Now()

	cus := Customer{
		ID:        uuid.New(),
		TenantID:  nc.TenantID,
		Name:      nc.Name,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Vehicle:   nc.Vehicle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, f, cus); err != nil {
		return Customer{}, fmt.Errorf("create: %w", err)
	}

	return cus, nil
}

// Update modifies information about a customer.
func (c *Core) Update(ctx context.Context, cus Customer, uc UpdateCustomer) (Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.update")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Customer{}, fmt.Errorf("update: %w", err)
	}

	if uc.Name != nil {
		cus.Name = *uc.Name
	}

	if uc.Email != nil {
		cus.Email = *uc.Email
	}

	if uc.Phone != nil {
		cus.Phone = *uc.Phone
	}

	if uc.Vehicle != nil {
		cus.Vehicle = *uc.Vehicle
	}

	cus.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, f, cus); err != nil {
		return Customer{}, fmt.Errorf("update: %w", err)
	}

	return cus, nil
}

// Delete removes the specified customer.
func (c *Core) Delete(ctx context.Context, cus Customer) error {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.delete")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if err := c.storer.Delete(ctx, f, cus); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing customers.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.query")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	customers, err := c.storer.Query(ctx, f, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return customers, nil
}

// Count returns the total number of customers.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.count")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return c.storer.Count(ctx, f, filter)
}

// QueryByID finds the customer by the specified ID.
func (c *Core) QueryByID(ctx context.Context, customerID uuid.UUID) (Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.querybyid")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Customer{}, fmt.Errorf("query: %w", err)
	}

	cus, err := c.storer.QueryByID(ctx, f, customerID)
	if err != nil {
		return Customer{}, fmt.Errorf("query: customerID[%s]: %w", customerID, err)
	}

	return cus, nil
}

// QueryByEmail finds the customer by the specified email.
func (c *Core) QueryByEmail(ctx context.Context, email mail.Address) (Customer, error) {
	ctx, span := otel.AddSpan(ctx, "business.customerbus.querybyemail")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Customer{}, fmt.Errorf("query: %w", err)
	}

	cus, err := c.storer.QueryByEmail(ctx, f, email)
	if err != nil {
		return Customer{}, fmt.Errorf("query: email[%s]: %w", email.Address, err)
	}

	return cus, nil
}
