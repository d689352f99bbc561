package customerapp

import "github.com/jcpaschoal/autonet/business/domain/customerbus"

var orderByFields = map[string]string{
	"customer_id": customerbus.OrderByID,
	"name":        customerbus.OrderByName,
	"email":       customerbus.OrderByEmail,
	"created_at":  customerbus.OrderByCreatedAt,
}
