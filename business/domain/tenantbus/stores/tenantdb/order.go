package tenantdb

import (
	"fmt"

	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
)

var orderByFields = map[string]string{
	tenantbus.OrderByID:        "tenant_id",
	tenantbus.OrderBySlug:      "slug",
	tenantbus.OrderByName:      "name",
	tenantbus.OrderByStatus:    "status",
	tenantbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
