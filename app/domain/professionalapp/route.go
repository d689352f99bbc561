package professionalapp

import (
	"net/http"

	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/business/types/role"
	"github.com/jcpaschoal/autonet/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log             *logger.Logger
	Auth            *auth.Auth
	Beginner        sqldb.Beginner
	TenantScope     []web.MidFunc
	ProfessionalBus *professionalbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	staff := mid.Authorize(cfg.Auth, role.Admin, role.Manager, role.Staff)
	managers := mid.Authorize(cfg.Auth, role.Admin, role.Manager)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.Beginner)

	read := append([]web.MidFunc{authen, staff}, cfg.TenantScope...)
	write := append(append([]web.MidFunc{authen, managers}, cfg.TenantScope...), transaction)

	api := newApp(cfg.ProfessionalBus)

	// The directory is public; the tenant comes from the request header.
	app.HandlerFunc(http.MethodGet, version, "/professionals", api.directory, cfg.TenantScope...)

	app.HandlerFunc(http.MethodGet, version, "/professionals/{professional_id}", api.queryByID, read...)
	app.HandlerFunc(http.MethodPost, version, "/professionals", api.create, write...)
	app.HandlerFunc(http.MethodPut, version, "/professionals/{professional_id}", api.update, write...)
	app.HandlerFunc(http.MethodDelete, version, "/professionals/{professional_id}", api.delete, write...)
}
