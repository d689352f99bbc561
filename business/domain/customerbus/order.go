package customerbus

import "github.com/jcpaschoal/autonet/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByName, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "a"
	OrderByName      = "b"
	OrderByEmail     = "c"
	OrderByCreatedAt = "d"
)
