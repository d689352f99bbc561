package professionalbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/phone"
	"github.com/jcpaschoal/autonet/business/types/specialty"
)

// Professional represents a service provider customers are referred to.
type Professional struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Name         name.Name
	BusinessName string
	Email        mail.Address
	Phone        phone.Null
	Specialty    specialty.Specialty
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProfessional contains information needed to create a new professional.
type NewProfessional struct {
	TenantID     uuid.UUID
	Name         name.Name
	BusinessName string
	Email        mail.Address
	Phone        phone.Null
	Specialty    specialty.Specialty
}

// UpdateProfessional contains information needed to update a professional.
type UpdateProfessional struct {
	Name         *name.Name
	BusinessName *string
	Email        *mail.Address
	Phone        *phone.Null
	Specialty    *specialty.Specialty
	Enabled      *bool
}
