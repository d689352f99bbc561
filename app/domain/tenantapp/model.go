package tenantapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/slug"
)

// Branding holds the visual identity of a tenant.
type Branding struct {
	LogoURL        string `json:"logoURL" validate:"omitempty,url"`
	PrimaryColor   string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondaryColor" validate:"omitempty,hexcolor"`
}

// Tenant represents information about a tenant.
type Tenant struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	Branding      Branding        `json:"branding"`
	Status        string          `json:"status"`
	Configuration json.RawMessage `json:"configuration"`
	DateCreated   string          `json:"dateCreated"`
	DateUpdated   string          `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Tenant) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppTenant(bus tenantbus.Tenant) Tenant {
	return Tenant{
		ID:            bus.ID.String(),
		Slug:          bus.Slug.String(),
		Name:          bus.Name.String(),
		Branding:      Branding(bus.Branding),
		Status:        bus.Status.String(),
		Configuration: bus.Configuration,
		DateCreated:   bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:   bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppTenants(tenants []tenantbus.Tenant) []Tenant {
	app := make([]Tenant, len(tenants))
	for i, t := range tenants {
		app[i] = toAppTenant(t)
	}
	return app
}

// =============================================================================

// NewTenant defines the data needed to add a new tenant. When no slug is
// given one is derived from the name.
type NewTenant struct {
	Slug          string          `json:"slug"`
	Name          string          `json:"name" validate:"required"`
	Branding      Branding        `json:"branding"`
	Configuration json.RawMessage `json:"configuration"`
}

// Decode implements the web.Decoder interface.
func (app *NewTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewTenant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewTenant(app NewTenant) (tenantbus.NewTenant, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return tenantbus.NewTenant{}, fmt.Errorf("parse name: %w", err)
	}

	var slg slug.Slug
	switch app.Slug {
	case "":
		slg, err = slug.FromName(app.Name)
	default:
		slg, err = slug.Parse(app.Slug)
	}
	if err != nil {
		return tenantbus.NewTenant{}, fmt.Errorf("parse slug: %w", err)
	}

	bus := tenantbus.NewTenant{
		Slug:          slg,
		Name:          nme,
		Branding:      tenantbus.Branding(app.Branding),
		Configuration: app.Configuration,
	}

	return bus, nil
}

// =============================================================================

// UpdateTenant defines the data needed to update the details of a tenant.
type UpdateTenant struct {
	Name     *string   `json:"name"`
	Branding *Branding `json:"branding"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateTenant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateTenant(app UpdateTenant) (tenantbus.UpdateTenant, error) {
	var bus tenantbus.UpdateTenant

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.Branding != nil {
		b := tenantbus.Branding(*app.Branding)
		bus.Branding = &b
	}

	return bus, nil
}

// =============================================================================

// Configuration is the raw configuration document of a tenant.
type Configuration struct {
	Document json.RawMessage
}

// Decode implements the web.Decoder interface.
func (app *Configuration) Decode(data []byte) error {
	if !json.Valid(data) {
		return errors.New("configuration is not a valid JSON document")
	}

	app.Document = json.RawMessage(data)
	return nil
}
