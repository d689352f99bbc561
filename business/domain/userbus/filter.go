package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/role"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID             *uuid.UUID
	Name           *string
	Email          *mail.Address
	Role           *role.Role
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
