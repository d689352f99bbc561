package authapp

import (
	"net/http"

	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log          *logger.Logger
	Auth         *auth.Auth
	ActiveKID    string
	TenantBus    *tenantbus.Core
	Resolver     *tenancy.Resolver
	TenantHeader string
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Auth, cfg.TenantBus, cfg.ActiveKID)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login, mid.Tenant(cfg.Log, cfg.Resolver, cfg.TenantHeader))
}
