package customerapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/phone"
)

// Vehicle describes the car of a customer.
type Vehicle struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// Customer represents information about an individual customer.
type Customer struct {
	ID          string  `json:"id"`
	TenantID    string  `json:"tenantID"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Vehicle     Vehicle `json:"vehicle"`
	DateCreated string  `json:"dateCreated"`
	DateUpdated string  `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Customer) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppCustomer(bus customerbus.Customer) Customer {
	return Customer{
		ID:       bus.ID.String(),
		TenantID: bus.TenantID.String(),
		Name:     bus.Name.String(),
		Email:    bus.Email.Address,
		Phone:    bus.Phone.String(),
		Vehicle: Vehicle{
			Make:  bus.Vehicle.Make,
			Model: bus.Vehicle.Model,
			Year:  bus.Vehicle.Year,
		},
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppCustomers(customers []customerbus.Customer) []Customer {
	app := make([]Customer, len(customers))
	for i, cus := range customers {
		app[i] = toAppCustomer(cus)
	}
	return app
}

// =============================================================================

// NewCustomer defines the data needed to add a new customer.
type NewCustomer struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone"`
	Vehicle Vehicle `json:"vehicle"`
}

// Decode implements the web.Decoder interface.
func (app *NewCustomer) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCustomer) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCustomer(tenantID uuid.UUID, app NewCustomer) (customerbus.NewCustomer, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return customerbus.NewCustomer{}, fmt.Errorf("parse name: %w", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return customerbus.NewCustomer{}, fmt.Errorf("parse email: %w", err)
	}

	ph, err := phone.ParseNull(app.Phone)
	if err != nil {
		return customerbus.NewCustomer{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := customerbus.NewCustomer{
		TenantID: tenantID,
		Name:     nme,
		Email:    *addr,
		Phone:    ph,
		Vehicle:  customerbus.Vehicle(app.Vehicle),
	}

	return bus, nil
}

// =============================================================================

// UpdateCustomer defines the data needed to update a customer.
type UpdateCustomer struct {
	Name    *string  `json:"name"`
	Email   *string  `json:"email" validate:"omitempty,email"`
	Phone   *string  `json:"phone"`
	Vehicle *Vehicle `json:"vehicle"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCustomer) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCustomer) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCustomer(app UpdateCustomer) (customerbus.UpdateCustomer, error) {
	var bus customerbus.UpdateCustomer

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			return customerbus.UpdateCustomer{}, fmt.Errorf("parse name: %w", err)
		}
		bus.Name = &nme
	}

	if app.Email != nil {
		addr, err := mail.ParseAddress(*app.Email)
		if err != nil {
			return customerbus.UpdateCustomer{}, fmt.Errorf("parse email: %w", err)
		}
		bus.Email = addr
	}

	if app.Phone != nil {
		ph, err := phone.ParseNull(*app.Phone)
		if err != nil {
			return customerbus.UpdateCustomer{}, fmt.Errorf("parse phone: %w", err)
		}
		bus.Phone = &ph
	}

	if app.Vehicle != nil {
		v := customerbus.Vehicle(*app.Vehicle)
		bus.Vehicle = &v
	}

	return bus, nil
}
