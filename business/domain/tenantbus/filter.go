package tenantbus

import (
	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/business/types/tenantstatus"
)

// QueryFilter holds the available fields a query can be filtered on.
// We are using pointer semantics because the With API mutates the value.
type QueryFilter struct {
	ID     *uuid.UUID
	Slug   *slug.Slug
	Name   *string
	Status *tenantstatus.Status
}
