package tenantapp

import (
	"net/http"

	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group. Writes go straight through the
// tenant core so the tenant lookup cache sees every change.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	admin := mid.Authorize(cfg.Auth, role.Admin)

	api := newApp(cfg.TenantBus)

	app.HandlerFunc(http.MethodGet, version, "/tenants", api.query, authen, admin)
	app.HandlerFunc(http.MethodGet, version, "/tenants/{tenant_id}", api.queryByID, authen, admin)
	app.HandlerFunc(http.MethodPost, version, "/tenants", api.create, authen, admin)
	app.HandlerFunc(http.MethodPut, version, "/tenants/{tenant_id}", api.update, authen, admin)
	app.HandlerFunc(http.MethodPut, version, "/tenants/{tenant_id}/configuration", api.updateConfiguration, authen, admin)
	app.HandlerFunc(http.MethodPost, version, "/tenants/{tenant_id}/activate", api.activate, authen, admin)
	app.HandlerFunc(http.MethodPost, version, "/tenants/{tenant_id}/suspend", api.suspend, authen, admin)
	app.HandlerFunc(http.MethodPost, version, "/tenants/{tenant_id}/deactivate", api.deactivate, authen, admin)
	app.HandlerFunc(http.MethodDelete, version, "/tenants/{tenant_id}", api.delete, authen, admin)
}
