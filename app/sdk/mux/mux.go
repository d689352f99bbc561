// Package mux provides support to bind domain level routes
// to the application mux.
package mux

import (
	"net/http"
	"time"

	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
)

// Options represent optional parameters.
type Options struct {
	corsOrigin []string
}

// WithCORS provides configuration options for CORS.
func WithCORS(origins []string) func(opts *Options) {
	return func(opts *Options) {
		opts.corsOrigin = origins
	}
}

// AuthConfig contains auth service specific config.
type AuthConfig struct {
	KeyLookup auth.KeyLookup
	Issuer    string
	ActiveKID string
	TokenTTL  time.Duration
}

// TenantConfig contains the settings used to resolve the tenant of a request.
type TenantConfig struct {
	Header   string
	Resolver *tenancy.Resolver
	CacheTTL time.Duration
}

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Build        string
	Log          *logger.Logger
	DB           *sqlx.DB
	Tracer       trace.Tracer
	AuthConfig   AuthConfig
	TenantConfig TenantConfig
}

// TenantScope returns the middleware every tenant owned route runs behind:
// the tenant is resolved and then required to exist and be active.
func (cfg Config) TenantScope(tenantBus *tenantbus.Core) []web.MidFunc {
	return []web.MidFunc{
		mid.Tenant(cfg.Log, cfg.TenantConfig.Resolver, cfg.TenantConfig.Header),
		mid.RequireTenant(tenantBus),
	}
}

// RouteAdder defines behavior that sets the routes to bind for an instance
// of the service.
type RouteAdder interface {
	Add(app *web.App, cfg Config)
}

// WebAPI constructs a http.Handler with all application routes bound.
func WebAPI(cfg Config, routeAdder RouteAdder, options ...func(opts *Options)) http.Handler {
	if cfg.TenantConfig.Resolver == nil {
		cfg.TenantConfig.Resolver = tenancy.NewResolver(tenancy.SkipMalformed)
	}

	app := web.NewApp(
		cfg.Log.Info,
		cfg.Tracer,
		mid.Otel(cfg.Tracer),
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Panics(),
	)

	var opts Options
	for _, option := range options {
		option(&opts)
	}

	if len(opts.corsOrigin) > 0 {
		app.EnableCORS(opts.corsOrigin)
	}

	routeAdder.Add(app, cfg)

	return app
}
