package customerdb

import (
	"fmt"

	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
)

var orderByFields = map[string]string{
	customerbus.OrderByID:        "customer_id",
	customerbus.OrderByName:      "name",
	customerbus.OrderByEmail:     "email",
	customerbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
