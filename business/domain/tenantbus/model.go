package tenantbus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/business/types/tenantstatus"
)

// Branding holds the visual identity of a tenant's network.
type Branding struct {
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
}

// Tenant represents an isolated referral network in the system.
type Tenant struct {
	ID            uuid.UUID
	Slug          slug.Slug
	Name          name.Name
	Branding      Branding
	Status        tenantstatus.Status
	Configuration json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTenant contains information needed to create a new tenant.
type NewTenant struct {
	Slug          slug.Slug
	Name          name.Name
	Branding      Branding
	Configuration json.RawMessage
}

// UpdateTenant contains information needed to update the details of a tenant.
type UpdateTenant struct {
	Name     *name.Name
	Branding *Branding
}

// =============================================================================

// New constructs a tenant from the specified information. New tenants
// start out active.
func New(nt NewTenant, now time.Time) (Tenant, error) {
	if nt.Slug.IsZero() {
		return Tenant{}, fmt.Errorf("slug: %w", ErrInvalidTenant)
	}

	if nt.Name.String() == "" {
		return Tenant{}, fmt.Errorf("name: %w", ErrInvalidTenant)
	}

	cfg, err := normalizeConfiguration(nt.Configuration)
	if err != nil {
		return Tenant{}, err
	}

	t := Tenant{
		ID:            uuid.New(),
		Slug:          nt.Slug,
		Name:          nt.Name,
		Branding:      nt.Branding,
		Status:        tenantstatus.Active,
		Configuration: cfg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return t, nil
}

// UpdateDetails changes the display details of the tenant.
func (t *Tenant) UpdateDetails(ut UpdateTenant, now time.Time) {
	if ut.Name != nil {
		t.Name = *ut.Name
	}

	if ut.Branding != nil {
		t.Branding = *ut.Branding
	}

	t.UpdatedAt = now
}

// UpdateConfiguration replaces the configuration document of the tenant. The
// document must be a JSON object.
func (t *Tenant) UpdateConfiguration(cfg json.RawMessage, now time.Time) error {
	cfg, err := normalizeConfiguration(cfg)
	if err != nil {
		return err
	}

	t.Configuration = cfg
	t.UpdatedAt = now

	return nil
}

// Activate puts the tenant back in service.
func (t *Tenant) Activate(now time.Time) {
	t.Status = tenantstatus.Active
	t.UpdatedAt = now
}

// Suspend temporarily takes an active tenant out of service. An inactive
// tenant can't be suspended.
func (t *Tenant) Suspend(now time.Time) error {
	if t.Status == tenantstatus.Inactive {
		return fmt.Errorf("suspend[%s]: %w", t.Status, ErrInvalidTransition)
	}

	t.Status = tenantstatus.Suspended
	t.UpdatedAt = now

	return nil
}

// Deactivate takes the tenant out of service.
func (t *Tenant) Deactivate(now time.Time) {
	t.Status = tenantstatus.Inactive
	t.UpdatedAt = now
}

// IsActive reports whether the tenant may serve requests.
func (t Tenant) IsActive() bool {
	return t.Status == tenantstatus.Active
}

func normalizeConfiguration(cfg json.RawMessage) (json.RawMessage, error) {
	cfg = bytes.TrimSpace(cfg)
	if len(cfg) == 0 {
		return json.RawMessage("{}"), nil
	}

	var doc map[string]any
	if err := json.Unmarshal(cfg, &doc); err != nil || doc == nil {
		return nil, fmt.Errorf("configuration must be a json object: %w", ErrInvalidTenant)
	}

	return cfg, nil
}
