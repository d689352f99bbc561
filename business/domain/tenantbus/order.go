package tenantbus

import "github.com/jcpaschoal/autonet/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderBySlug, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "a"
	OrderBySlug      = "b"
	OrderByName      = "c"
	OrderByStatus    = "d"
	OrderByCreatedAt = "e"
)
