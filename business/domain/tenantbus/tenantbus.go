// Package tenantbus provides business access to the tenant domain.
package tenantbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jcpaschoal/autonet/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound          = errors.New("tenant not found")
	ErrUniqueSlug        = errors.New("slug is not unique")
	ErrInvalidTenant     = errors.New("invalid tenant")
	ErrInvalidTransition = errors.New("invalid tenant status transition")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	Delete(ctx context.Context, t Tenant) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Tenant, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryBySlug(ctx context.Context, s slug.Slug) (Tenant, error)
}

// Core manages the set of APIs for tenant access. Tenants are not owned by
// a tenant so the core carries no scope.
type Core struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

// NewCore constructs a core for tenant api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
		now:    time.Now,
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
		now:    c.now,
	}, nil
}

// Create adds a new tenant to the system.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	t, err := New(nt, c.now())
	if err != nil {
		return Tenant{}, fmt.Errorf("new: %w", err)
	}

	if err := c.storer.Create(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// UpdateDetails modifies the display details of a tenant.
func (c *Core) UpdateDetails(ctx context.Context, t Tenant, ut UpdateTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.updatedetails")
	defer span.End()

	t.UpdateDetails(ut, c.now())

	return c.update(ctx, t)
}

// UpdateConfiguration replaces the configuration document of a tenant.
func (c *Core) UpdateConfiguration(ctx context.Context, t Tenant, cfg json.RawMessage) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.updateconfiguration")
	defer span.End()

	if err := t.UpdateConfiguration(cfg, c.now()); err != nil {
		return Tenant{}, fmt.Errorf("updateconfiguration: %w", err)
	}

	return c.update(ctx, t)
}

// Activate puts a tenant back in service.
func (c *Core) Activate(ctx context.Context, t Tenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.activate")
	defer span.End()

	t.Activate(c.now())

	return c.update(ctx, t)
}

// Suspend temporarily takes a tenant out of service.
func (c *Core) Suspend(ctx context.Context, t Tenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.suspend")
	defer span.End()

	if err := t.Suspend(c.now()); err != nil {
		return Tenant{}, err
	}

	return c.update(ctx, t)
}

// Deactivate takes a tenant out of service.
func (c *Core) Deactivate(ctx context.Context, t Tenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.deactivate")
	defer span.End()

	t.Deactivate(c.now())

	return c.update(ctx, t)
}

// Delete removes the specified tenant from the system.
func (c *Core) Delete(ctx context.Context, t Tenant) error {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, t); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing tenants.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.query")
	defer span.End()

	tenants, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return tenants, nil
}

// Count returns the total number of tenants.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.querybyid")
	defer span.End()

	t, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return t, nil
}

// QueryBySlug finds the tenant by the specified slug.
func (c *Core) QueryBySlug(ctx context.Context, s slug.Slug) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.querybyslug")
	defer span.End()

	t, err := c.storer.QueryBySlug(ctx, s)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: slug[%s]: %w", s, err)
	}

	return t, nil
}

func (c *Core) update(ctx context.Context, t Tenant) (Tenant, error) {
	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}
