package userapp

import (
	"net/http"

	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/business/types/role"
	"github.com/jcpaschoal/autonet/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log         *logger.Logger
	Auth        *auth.Auth
	Beginner    sqldb.Beginner
	TenantScope []web.MidFunc
	UserBus     *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.Beginner)

	read := append([]web.MidFunc{authen, mid.Authorize(cfg.Auth, role.Admin, role.Manager)}, cfg.TenantScope...)
	write := append(append([]web.MidFunc{}, read...), transaction)

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, read...)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, read...)
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, write...)
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}", api.update, write...)
	app.HandlerFunc(http.MethodDelete, version, "/users/{user_id}", api.delete, write...)
}
