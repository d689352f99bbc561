package referralapp

import "github.com/jcpaschoal/autonet/business/domain/referralbus"

var orderByFields = map[string]string{
	"referral_id": referralbus.OrderByID,
	"code":        referralbus.OrderByCode,
	"status":      referralbus.OrderByStatus,
	"created_at":  referralbus.OrderByCreatedAt,
}
