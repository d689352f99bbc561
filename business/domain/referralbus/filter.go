package referralbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/referralstatus"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID             *uuid.UUID
	Code           *string
	ReferrerID     *uuid.UUID
	ProfessionalID *uuid.UUID
	Status         *referralstatus.Status
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
