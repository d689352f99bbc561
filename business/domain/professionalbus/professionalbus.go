// Package professionalbus provides business access to the professional domain.
package professionalbus

import (
	"context"
	"errors"
	"fmt"
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
	ErrNotFound    = errors.New("professional not found")
	ErrUniqueEmail = errors.New("email is not unique")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, f tenancy.Filter, prf Professional) error
	Update(ctx context.Context, f tenancy.Filter, prf Professional) error
	Delete(ctx context.Context, f tenancy.Filter, prf Professional) error
	Query(ctx context.Context, f tenancy.Filter, filter QueryFilter, orderBy order.By, page page.Page) ([]Professional, error)
	Count(ctx context.Context, f tenancy.Filter, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, f tenancy.Filter, professionalID uuid.UUID) (Professional, error)
}

// Core manages the set of APIs for professional access.
type Core struct {
	log    *logger.Logger
	storer Storer
	scope  tenancy.Scope
}

// NewCore constructs an unscoped core for professional api access.
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

// Bypass constructs a new Core value that spans every tenant.
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

// Create adds a new professional owned by np.TenantID.
func (c *Core) Create(ctx context.Context, np NewProfessional) (Professional, error) {
	ctx, span := otel.AddSpan(ctx, "business.professionalbus.create")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Professional{}, fmt.Errorf("create: %w", err)
	}

	if err := f.CheckOwner(np.TenantID); err != nil {
		return Professional{}, fmt.Errorf("create: %w", err)
	}

	now := time.Now()

	prf := Professional{
		ID:           uuid.New(),
		TenantID:     np.TenantID,
		Name:         np.Name,
		BusinessName: np.BusinessName,
		Email:        np.Email,
		Phone:        np.Phone,
		Specialty:    np.Specialty,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storer.Create(ctx, f, prf); err != nil {
		return Professional{}, fmt.Errorf("create: %w", err)
	}

	return prf, nil
}

// Update modifies information about a professional.
func (c *Core) Update(ctx context.Context, prf Professional, up UpdateProfessional) (Professional, error) {
	ctx, span := otel.AddSpan(ctx, "business.professionalbus.update")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Professional{}, fmt.Errorf("update: %w", err)
	}

	if up.Name != nil {
		prf.Name = *up.Name
	}

	if up.BusinessName != nil {
		prf.BusinessName = *up.BusinessName
	}

	if up.Email != nil {
		prf.Email = *up.Email
	}

	if up.Phone != nil {
		prf.Phone = *up.Phone
	}

	if up.Specialty != nil {
		prf.Specialty = *up.Specialty
	}

	if up.Enabled != nil {
		prf.Enabled = *up.Enabled
	}

	prf.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, f, prf); err != nil {
		return Professional{}, fmt.Errorf("update: %w", err)
	}

	return prf, nil
}

// Delete removes the specified professional.
func (c *Core) Delete(ctx context.Context, prf Professional) error {
	ctx, span := otel.AddSpan(ctx, "business.professionalbus.delete")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if err := c.storer.Delete(ctx, f, prf); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing professionals.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Professional, error) {
	ctx, span := otel.AddSpan(ctx, "business.professionalbus.query")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	prfs, err := c.storer.Query(ctx, f, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return prfs, nil
}

// Count returns the total number of professionals.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.professionalbus.count")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return c.storer.Count(ctx, f, filter)
}

// QueryByID finds the professional by the specified ID.
func (c *Core) QueryByID(ctx context.Context, professionalID uuid.UUID) (Professional, error) {
	ctx, span := otel.AddSpan(ctx, "business.professionalbus.querybyid")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Professional{}, fmt.Errorf("query: %w", err)
	}

	prf, err := c.storer.QueryByID(ctx, f, professionalID)
	if err != nil {
		return Professional{}, fmt.Errorf("query: professionalID[%s]: %w", professionalID, err)
	}

	return prf, nil
}
