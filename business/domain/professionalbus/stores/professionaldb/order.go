package professionaldb

import (
	"fmt"

	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
)

var orderByFields = map[string]string{
	professionalbus.OrderByID:        "professional_id",
	professionalbus.OrderByName:      "name",
	professionalbus.OrderBySpecialty: "specialty",
	professionalbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
