package referralbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/referralstatus"
)

// Referral represents a customer recommending a professional to someone.
type Referral struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Code           string
	ReferrerID     uuid.UUID
	ProfessionalID uuid.UUID
	ReferredName   name.Name
	ReferredEmail  mail.Address
	Status         referralstatus.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewReferral contains information needed to create a new referral.
type NewReferral struct {
	TenantID       uuid.UUID
	ReferrerID     uuid.UUID
	ProfessionalID uuid.UUID
	ReferredName   name.Name
	ReferredEmail  mail.Address
}
