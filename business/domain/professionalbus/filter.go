package professionalbus

import (
	"net/mail"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/specialty"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID        *uuid.UUID
	Name      *string
	Email     *mail.Address
	Specialty *specialty.Specialty
	Enabled   *bool
}
