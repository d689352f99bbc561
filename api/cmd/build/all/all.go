// Package all binds all the routes into the specified app.
package all

import (
	"github.com/jcpaschoal/autonet/app/domain/authapp"
	"github.com/jcpaschoal/autonet/app/domain/checkapp"
	"github.com/jcpaschoal/autonet/app/domain/customerapp"
	"github.com/jcpaschoal/autonet/app/domain/professionalapp"
	"github.com/jcpaschoal/autonet/app/domain/referralapp"
	"github.com/jcpaschoal/autonet/app/domain/tenantapp"
	"github.com/jcpaschoal/autonet/app/domain/userapp"
	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mux"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/domain/customerbus/stores/customerdb"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus/stores/professionaldb"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/domain/referralbus/stores/referraldb"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus/stores/tenantcache"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouterAdder interface.
func (add) Add(app *web.App, cfg mux.Config) {

	// Construct the business domain packages we need here so we are using the
	// same instances for the different set of domain apis.
	tenantBus := tenantbus.NewCore(cfg.Log, tenantcache.NewStore(cfg.Log, tenantdb.NewStore(cfg.Log, cfg.DB), cfg.TenantConfig.CacheTTL))
	userBus := userbus.NewCore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB))
	customerBus := customerbus.NewCore(cfg.Log, customerdb.NewStore(cfg.Log, cfg.DB))
	professionalBus := professionalbus.NewCore(cfg.Log, professionaldb.NewStore(cfg.Log, cfg.DB))
	referralBus := referralbus.NewCore(cfg.Log, customerBus, professionalBus, referraldb.NewStore(cfg.Log, cfg.DB))

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
		TokenTTL:  cfg.AuthConfig.TokenTTL,
	})

	beginner := sqldb.NewBeginner(cfg.DB)
	tenantScope := cfg.TenantScope(tenantBus)

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Log:          cfg.Log,
		Auth:         authClient,
		ActiveKID:    cfg.AuthConfig.ActiveKID,
		TenantBus:    tenantBus,
		Resolver:     cfg.TenantConfig.Resolver,
		TenantHeader: cfg.TenantConfig.Header,
	})

	tenantapp.Routes(app, tenantapp.Config{
		Auth:      authClient,
		TenantBus: tenantBus,
	})

	userapp.Routes(app, userapp.Config{
		Log:         cfg.Log,
		Auth:        authClient,
		Beginner:    beginner,
		TenantScope: tenantScope,
		UserBus:     userBus,
	})

	customerapp.Routes(app, customerapp.Config{
		Log:         cfg.Log,
		Auth:        authClient,
		Beginner:    beginner,
		TenantScope: tenantScope,
		CustomerBus: customerBus,
	})

	professionalapp.Routes(app, professionalapp.Config{
		Log:             cfg.Log,
		Auth:            authClient,
		Beginner:        beginner,
		TenantScope:     tenantScope,
		ProfessionalBus: professionalBus,
	})

	referralapp.Routes(app, referralapp.Config{
		Log:         cfg.Log,
		Auth:        authClient,
		Beginner:    beginner,
		TenantScope: tenantScope,
		ReferralBus: referralBus,
	})
}
