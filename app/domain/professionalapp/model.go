package professionalapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/phone"
	"github.com/jcpaschoal/autonet/business/types/specialty"
)

// Professional represents a service provider of a tenant.
type Professional struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenantID"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Specialty    string `json:"specialty"`
	Enabled      bool   `json:"enabled"`
	DateCreated  string `json:"dateCreated"`
	DateUpdated  string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Professional) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppProfessional(bus professionalbus.Professional) Professional {
	return Professional{
		ID:           bus.ID.String(),
		TenantID:     bus.TenantID.String(),
		Name:         bus.Name.String(),
		BusinessName: bus.BusinessName,
		Email:        bus.Email.Address,
		Phone:        bus.Phone.String(),
		Specialty:    bus.Specialty.String(),
		Enabled:      bus.Enabled,
		DateCreated:  bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:  bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppProfessionals(prfs []professionalbus.Professional) []Professional {
	app := make([]Professional, len(prfs))
	for i, prf := range prfs {
		app[i] = toAppProfessional(prf)
	}
	return app
}

// =============================================================================

// NewProfessional defines the data needed to add a new professional.
type NewProfessional struct {
	Name         string `json:"name" validate:"required"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	Specialty    string `json:"specialty" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewProfessional) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewProfessional) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewProfessional(tenantID uuid.UUID, app NewProfessional) (professionalbus.NewProfessional, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return professionalbus.NewProfessional{}, fmt.Errorf("parse name: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return professionalbus.NewProfessional{}, fmt.Errorf("parse email: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return professionalbus.NewProfessional{}, fmt.Errorf("parse phone: %w", err)
	}

	spc, err := specialty.Parse(app.Specialty)
	if err != nil {
		return professionalbus.NewProfessional{}, fmt.Errorf("parse specialty: %w", err)
	}

	bus := professionalbus.NewProfessional{
		TenantID:     tenantID,
		Name:         nme,
		BusinessName: app.BusinessName,
		Email:        *addr,
		Phone:        ph,
		Specialty:    spc,
	}

	return bus, nil
}

// =============================================================================

// UpdateProfessional defines the data needed to update a professional.
type UpdateProfessional struct {
	Name         *string `json:"name"`
	BusinessName *string `json:"businessName"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Specialty    *string `json:"specialty"`
	Enabled      *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateProfessional) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateProfessional) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateProfessional(app UpdateProfessional) (professionalbus.UpdateProfessional, error) {
	bus := professionalbus.UpdateProfessional{
		BusinessName: app.BusinessName,
		Enabled:      app.Enabled,
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return professionalbus.UpdateProfessional{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.Email != nil {
		addr, err := mail.ParseAddress(*app.Email)
		if err != nil {
			return professionalbus.UpdateProfessional{}, fmt.Errorf("parse email: %w", err)
		}
		bus.Email = addr
	}

	if app.Phone != nil {
		ph, err := phone.ParseNull(*app.Phone)
		if err != nil {
			return professionalbus.UpdateProfessional{}, fmt.Errorf("parse phone: %w", err)
		}
		bus.Phone = &ph
	}

	if app.Specialty != nil {
		spc, err := specialty.Parse(*app.Specialty)
		if err != nil {
			return professionalbus.UpdateProfessional{}, fmt.Errorf("parse specialty: %w", err)
		}
		bus.Specialty = &spc
	}

	return bus, nil
}
