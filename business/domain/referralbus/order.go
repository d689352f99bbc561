package referralbus

import "github.com/jcpaschoal/autonet/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "a"
	OrderByCode      = "b"
	OrderByStatus    = "c"
	OrderByCreatedAt = "d"
)
