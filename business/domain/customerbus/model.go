package customerbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/phone"
)

// Vehicle describes the car a customer brings in.
type Vehicle struct {
	Make  string
	Model string
	Year  int
}

// Customer represents a vehicle owner registered with a tenant.
type Customer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      name.Name
	Email     mail.Address
	Phone     phone.Null
	Vehicle   Vehicle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer contains information needed to create a new customer. The
// owning tenant is supplied by the caller.
type NewCustomer struct {
	TenantID uuid.UUID
	Name     name.Name
	Email    mail.Address
	Phone    phone.Null
	Vehicle  Vehicle
}

// UpdateCustomer contains information needed to update a customer.
type UpdateCustomer struct {
	Name    *name.Name
	Email   *mail.Address
	Phone   *phone.Null
	Vehicle *Vehicle
}
