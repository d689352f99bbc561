package customerbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// QueryFilter holds the available fields a query can be filtered on.
// The tenant is never part of it; the core applies it.
type QueryFilter struct {
	ID             *uuid.UUID
	Name           *string
	Email          *mail.Address
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
