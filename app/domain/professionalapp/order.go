package professionalapp

import "github.com/jcpaschoal/autonet/business/domain/professionalbus"

var orderByFields = map[string]string{
	"professional_id": professionalbus.OrderByID,
	"name":            professionalbus.OrderByName,
	"specialty":       professionalbus.OrderBySpecialty,
	"created_at":      professionalbus.OrderByCreatedAt,
}
