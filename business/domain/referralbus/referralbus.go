// Package referralbus provides business access to the referral domain.
package referralbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/referralstatus"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jcpaschoal/autonet/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound             = errors.New("referral not found")
	ErrUniqueCode           = errors.New("referral code is not unique")
	ErrInvalidReferrer      = errors.New("referrer customer does not exist")
	ErrInvalidProfessional  = errors.New("professional does not exist")
	ErrProfessionalDisabled = errors.New("professional is not accepting referrals")
	ErrInvalidTransition    = errors.New("invalid referral status transition")
	ErrCodeExhausted        = errors.New("could not generate a unique referral code")
)

// codeAttempts bounds how many codes Create tries before giving up.
const codeAttempts = 5

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, f tenancy.Filter, ref Referral) error
	Update(ctx context.Context, f tenancy.Filter, ref Referral) error
	Delete(ctx context.Context, f tenancy.Filter, ref Referral) error
	Query(ctx context.Context, f tenancy.Filter, filter QueryFilter, orderBy order.By, page page.Page) ([]Referral, error)
	Count(ctx context.Context, f tenancy.Filter, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, f tenancy.Filter, referralID uuid.UUID) (Referral, error)
	QueryByCode(ctx context.Context, f tenancy.Filter, code string) (Referral, error)
}

// Option configures optional behavior of the Core.
type Option func(*Core)

// WithCodeGenerator replaces the function used to generate referral codes.
func WithCodeGenerator(fn func() (string, error)) Option {
	return func(c *Core) {
		c.newCode = fn
	}
}

// Core manages the set of APIs for referral access.
type Core struct {
	log             *logger.Logger
	customerBus     *customerbus.Core
	professionalBus *professionalbus.Core
	storer          Storer
	scope           tenancy.Scope
	newCode         func() (string, error)
}

// NewCore constructs an unscoped core for referral api access.
func NewCore(log *logger.Logger, customerBus *customerbus.Core, professionalBus *professionalbus.Core, storer Storer, opts ...Option) *Core {
	c := Core{
		log:             log,
		customerBus:     customerBus,
		professionalBus: professionalBus,
		storer:          storer,
		scope:           tenancy.Unscoped(),
		newCode:         NewCode,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// NewWithScope constructs a new Core value bound to the tenant of the
// specified request scope. The customer and professional lookups made
// while creating a referral are bound to the same scope.
func (c *Core) NewWithScope(tc *tenancy.Context) *Core {
	nc := *c
	nc.customerBus = c.customerBus.NewWithScope(tc)
	nc.professionalBus = c.professionalBus.NewWithScope(tc)
	nc.scope = tc

	return &nc
}

// Bypass constructs a new Core value that spans every tenant.
func (c *Core) Bypass() *Core {
	nc := *c
	nc.customerBus = c.customerBus.Bypass()
	nc.professionalBus = c.professionalBus.Bypass()
	nc.scope = tenancy.Bypass()

	return &nc
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	customerBus, err := c.customerBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	professionalBus, err := c.professionalBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	nc := *c
	nc.storer = storer
	nc.customerBus = customerBus
	nc.professionalBus = professionalBus

	return &nc, nil
}

// Create adds a new referral. The referrer and the professional must both
// be visible in the current scope and belong to nr.TenantID.
func (c *Core) Create(ctx context.Context, nr NewReferral) (Referral, error) {
	ctx, span := otel.AddSpan(ctx, "business.referralbus.create")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Referral{}, fmt.Errorf("create: %w", err)
	}

	if err := f.CheckOwner(nr.TenantID); err != nil {
		return Referral{}, fmt.Errorf("create: %w", err)
	}

	cus, err := c.customerBus.QueryByID(ctx, nr.ReferrerID)
	if err != nil {
		if errors.Is(err, customerbus.ErrNotFound) {
			return Referral{}, fmt.Errorf("create: referrerID[%s]: %w", nr.ReferrerID, ErrInvalidReferrer)
		}
		return Referral{}, fmt.Errorf("create: %w", err)
	}

	prf, err := c.professionalBus.QueryByID(ctx, nr.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalbus.ErrNotFound) {
			return Referral{}, fmt.Errorf("create: professionalID[%s]: %w", nr.ProfessionalID, ErrInvalidProfessional)
		}
		return Referral{}, fmt.Errorf("create: %w", err)
	}

	if cus.TenantID != nr.TenantID || prf.TenantID != nr.TenantID {
		return Referral{}, fmt.Errorf("create: references: %w", tenancy.ErrCrossTenant)
	}

	if !prf.Enabled {
		return Referral{}, fmt.Errorf("create: professionalID[%s]: %w", prf.ID, ErrProfessionalDisabled)
	}

	now := time.Now()

	ref := Referral{
		ID:             uuid.New(),
		TenantID:       nr.TenantID,
		ReferrerID:     cus.ID,
		ProfessionalID: prf.ID,
		ReferredName:   nr.ReferredName,
		ReferredEmail:  nr.ReferredEmail,
		Status:         referralstatus.Pending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for attempt := 1; attempt <= codeAttempts; attempt++ {
		code, err := c.newCode()
		if err != nil {
			return Referral{}, fmt.Errorf("create: code: %w", err)
		}
		ref.Code = code

		err = c.storer.Create(ctx, f, ref)
		if err == nil {
			return ref, nil
		}

		if !errors.Is(err, ErrUniqueCode) {
			return Referral{}, fmt.Errorf("create: %w", err)
		}

		c.log.Warn(ctx, "referral code collision", "attempt", attempt)
	}

	return Referral{}, fmt.Errorf("create: %w", ErrCodeExhausted)
}

// UpdateStatus moves the referral to the specified status.
func (c *Core) UpdateStatus(ctx context.Context, ref Referral, status referralstatus.Status) (Referral, error) {
	ctx, span := otel.AddSpan(ctx, "business.referralbus.updatestatus")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Referral{}, fmt.Errorf("updatestatus: %w", err)
	}

	if !ref.Status.CanTransition(status) {
		return Referral{}, fmt.Errorf("updatestatus: %s -> %s: %w", ref.Status, status, ErrInvalidTransition)
	}

	ref.Status = status
	ref.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, f, ref); err != nil {
		return Referral{}, fmt.Errorf("updatestatus: %w", err)
	}

	return ref, nil
}

// Delete removes the specified referral.
func (c *Core) Delete(ctx context.Context, ref Referral) error {
	ctx, span := otel.AddSpan(ctx, "business.referralbus.delete")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if err := c.storer.Delete(ctx, f, ref); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Query retrieves a list of existing referrals.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Referral, error) {
	ctx, span := otel.AddSpan(ctx, "business.referralbus.query")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	refs, err := c.storer.Query(ctx, f, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return refs, nil
}

// Count returns the total number of referrals.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.referralbus.count")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	return c.storer.Count(ctx, f, filter)
}

// QueryByID finds the referral by the specified ID.
func (c *Core) QueryByID(ctx context.Context, referralID uuid.UUID) (Referral, error) {
	ctx, span := otel.AddSpan(ctx, "business.referralbus.querybyid")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Referral{}, fmt.Errorf("query: %w", err)
	}

	ref, err := c.storer.QueryByID(ctx, f, referralID)
	if err != nil {
		return Referral{}, fmt.Errorf("query: referralID[%s]: %w", referralID, err)
	}

	return ref, nil
}

// QueryByCode finds the referral by its code.
func (c *Core) QueryByCode(ctx context.Context, code string) (Referral, error) {
	ctx, span := otel.AddSpan(ctx, "business.referralbus.querybycode")
	defer span.End()

	f, err := c.scope.Filter()
	if err != nil {
		return Referral{}, fmt.Errorf("query: %w", err)
	}

	code = NormalizeCode(code)
	if !ValidCode(code) {
		return Referral{}, fmt.Errorf("query: code[%s]: %w", code, ErrNotFound)
	}

	ref, err := c.storer.QueryByCode(ctx, f, code)
	if err != nil {
		return Referral{}, fmt.Errorf("query: code[%s]: %w", code, err)
	}

	return ref, nil
}
