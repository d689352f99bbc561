package tenancy

import (
	"fmt"

	"github.com/google/uuid"
)

// Scope yields the tenant filter for a single storage operation.
type Scope interface {
	Filter() (Filter, error)
}

// Filter restricts one storage operation to the rows of a single tenant.
// A Filter built by Bypass spans every tenant. The zero Filter is not ready
// and is rejected by every store.
type Filter struct {
	tenantID uuid.UUID
	bypass   bool
}

// ForTenant returns a filter pinned to the specified tenant.
func ForTenant(tenantID uuid.UUID) Filter {
	return Filter{tenantID: tenantID}
}

// TenantID returns the tenant the filter is pinned to. The bool is false for
// bypass and zero filters.
func (f Filter) TenantID() (uuid.UUID, bool) {
	if f.bypass || f.tenantID == uuid.Nil {
		return uuid.Nil, false
	}

	return f.tenantID, true
}

// IsBypass reports whether the filter spans every tenant.
func (f Filter) IsBypass() bool {
	return f.bypass
}

// Validate returns ErrContextNotReady for a zero filter.
func (f Filter) Validate() error {
	if !f.bypass && f.tenantID == uuid.Nil {
		return ErrContextNotReady
	}

	return nil
}

// Allows reports whether a row owned by tenantID is visible through the filter.
func (f Filter) Allows(tenantID uuid.UUID) bool {
	if f.bypass {
		return true
	}

	return f.tenantID != uuid.Nil && f.tenantID == tenantID
}

// CheckOwner verifies an aggregate owned by tenantID may be written through
// the filter.
func (f Filter) CheckOwner(tenantID uuid.UUID) error {
	if err := f.Validate(); err != nil {
		return err
	}

	if tenantID == uuid.Nil {
		return fmt.Errorf("owner missing: %w", ErrCrossTenant)
	}

	if !f.Allows(tenantID) {
		return fmt.Errorf("owner[%s] scope[%s]: %w", tenantID, f.tenantID, ErrCrossTenant)
	}

	return nil
}

// String implements the fmt.Stringer interface.
func (f Filter) String() string {
	switch {
	case f.bypass:
		return "bypass"
	case f.tenantID == uuid.Nil:
		return "none"
	}

	return f.tenantID.String()
}

// =============================================================================

type bypassScope struct{}

func (bypassScope) Filter() (Filter, error) {
	return Filter{bypass: true}, nil
}

// Bypass returns the scope for infrastructure work that deliberately spans
// tenants: seeding, admin tooling and credential lookups made before a
// tenant is known.
func Bypass() Scope {
	return bypassScope{}
}

type unscoped struct{}

func (unscoped) Filter() (Filter, error) {
	return Filter{}, ErrContextNotReady
}

// Unscoped returns the scope used before a request scope is bound. Every
// operation made through it fails with ErrContextNotReady.
func Unscoped() Scope {
	return unscoped{}
}
