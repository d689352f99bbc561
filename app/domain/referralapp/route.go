package referralapp

import (
	"net/http"

	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
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
	ReferralBus *referralbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	staff := mid.Authorize(cfg.Auth, role.Admin, role.Manager, role.Staff)
	managers := mid.Authorize(cfg.Auth, role.Admin, role.Manager)
	transaction := mid.BeginCommitRollback(cfg.Log, cfg.Beginner)

	read := append([]web.MidFunc{authen, staff}, cfg.TenantScope...)
	write := append(append([]web.MidFunc{}, read...), transaction)
	remove := append(append([]web.MidFunc{authen, managers}, cfg.TenantScope...), transaction)

	api := newApp(cfg.ReferralBus)

	app.HandlerFunc(http.MethodGet, version, "/referrals", api.query, read...)
	app.HandlerFunc(http.MethodGet, version, "/referrals/{referral_id}", api.queryByID, read...)
	app.HandlerFunc(http.MethodGet, version, "/referrals/code/{code}", api.queryByCode, read...)
	app.HandlerFunc(http.MethodPost, version, "/referrals", api.create, write...)
	app.HandlerFunc(http.MethodPut, version, "/referrals/{referral_id}/status", api.updateStatus, write...)
	app.HandlerFunc(http.MethodDelete, version, "/referrals/{referral_id}", api.delete, remove...)
}
