// Package tenancy holds the request scoped tenant context, the rules used to
// resolve it from a request and the filter every tenant owned store applies.
package tenancy

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// state is the two-state variant held by a Context. Only unset and set
// implement it.
type state interface {
	tenant() (uuid.UUID, bool)
}

type unset struct{}

func (unset) tenant() (uuid.UUID, bool) { return uuid.Nil, false }

type set struct {
	id uuid.UUID
}

func (s set) tenant() (uuid.UUID, bool) { return s.id, true }

// =============================================================================

// Context is the write-once holder of the active tenant for one request
// scope. Once a tenant is set it can't be replaced until Clear is called.
// The zero value is an unset Context ready for use.
type Context struct {
	mu    sync.RWMutex
	state state
}

// NewContext constructs an unset Context.
func NewContext() *Context {
	return &Context{
		state: unset{},
	}
}

// SetTenant stores the tenant for this scope. It fails with ErrStateConflict
// when a tenant is already set, leaving the stored tenant untouched. A nil
// Context has nowhere to hold the tenant and reports ErrContextNotReady.
func (c *Context) SetTenant(tenantID uuid.UUID) error {
	if c == nil {
		return fmt.Errorf("set tenant[%s]: nil context: %w", tenantID, ErrContextNotReady)
	}

	if tenantID == uuid.Nil {
		return fmt.Errorf("set tenant: nil id: %w", ErrParseFailure)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.current().tenant(); ok {
		return fmt.Errorf("set tenant[%s]: holds[%s]: %w", tenantID, current, ErrStateConflict)
	}

	c.state = set{id: tenantID}

	return nil
}

// TenantID returns the tenant for this scope or ErrNotInitialized when none
// has been set.
func (c *Context) TenantID() (uuid.UUID, error) {
	if c == nil {
		return uuid.Nil, ErrNotInitialized
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.current().tenant()
	if !ok {
		return uuid.Nil, ErrNotInitialized
	}

	return id, nil
}

// HasTenant reports whether a tenant is set.
func (c *Context) HasTenant() bool {
	_, err := c.TenantID()
	return err == nil
}

// Clear returns the Context to the unset state. Only scope teardown code
// calls this, never a request handler. Clearing a nil Context does nothing.
func (c *Context) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = unset{}
}

// Filter implements Scope. The tenant is read on every call.
func (c *Context) Filter() (Filter, error) {
	id, err := c.TenantID()
	if err != nil {
		return Filter{}, fmt.Errorf("filter: %w", ErrContextNotReady)
	}

	return ForTenant(id), nil
}

// String implements the fmt.Stringer interface.
func (c *Context) String() string {
	id, err := c.TenantID()
	if err != nil {
		return "unset"
	}

	return id.String()
}

func (c *Context) current() state {
	if c.state == nil {
		return unset{}
	}

	return c.state
}
