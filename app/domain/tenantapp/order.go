package tenantapp

import "github.com/jcpaschoal/autonet/business/domain/tenantbus"

var orderByFields = map[string]string{
	"tenant_id":  tenantbus.OrderByID,
	"slug":       tenantbus.OrderBySlug,
	"name":       tenantbus.OrderByName,
	"status":     tenantbus.OrderByStatus,
	"created_at": tenantbus.OrderByCreatedAt,
}
