package referraldb

import (
	"fmt"

	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
)

var orderByFields = map[string]string{
	referralbus.OrderByID:        "referral_id",
	referralbus.OrderByCode:      "code",
	referralbus.OrderByStatus:    "status",
	referralbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
