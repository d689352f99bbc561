package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/metrics"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/foundation/logger"
)

// Set of errors reported by the tenant middleware.
var (
	ErrTenantUnresolved = errors.New("tenant could not be resolved for this request")
	ErrTenantInactive   = errors.New("tenant is not active")
)

// Tenant resolves the tenant of the request into the request scope. The
// tenant claim of an authenticated caller takes precedence over the header.
// A request that resolves nothing carries on with an unset context.
func Tenant(log *logger.Logger, resolver *tenancy.Resolver, header string) web.MidFunc {
	if header == "" {
		header = tenancy.DefaultHeader
	}

	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			tc := GetTenant(ctx)
			ctx = setTenant(ctx, tc)

			candidates := []tenancy.Candidate{
				{Source: tenancy.SourceClaim, Value: GetClaims(ctx).TenantID, Trusted: true},
				{Source: tenancy.SourceHeader, Value: r.Header.Get(header)},
			}

			res, err := resolver.Resolve(tc, candidates...)
			if err != nil {
				metrics.AddResolution(tenancy.SourceClaim, metrics.OutcomeRejected)
				return errs.New(errs.Unauthenticated, err)
			}

			switch {
			case res.Preset:
			case res.Resolved:
				metrics.AddResolution(res.Source, metrics.OutcomeResolved)
			default:
				metrics.AddResolution("", metrics.OutcomeUnresolved)
			}

			if len(res.Skipped) > 0 {
				log.Warn(ctx, "tenant resolution skipped malformed values", "sources", res.Skipped, "tenant", tc.String())
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// RequireTenant fails the request unless its tenant was resolved and names
// an existing, active tenant.
func RequireTenant(tenantBus *tenantbus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			tenantID, err := GetTenant(ctx).TenantID()
			if err != nil {
				return errs.New(errs.FailedPrecondition, ErrTenantUnresolved)
			}

			tnt, err := tenantBus.QueryByID(ctx, tenantID)
			if err != nil {
				if errors.Is(err, tenantbus.ErrNotFound) {
					return errs.New(errs.NotFound, fmt.Errorf("tenant[%s]: %w", tenantID, tenantbus.ErrNotFound))
				}
				return errs.Errorf(errs.Internal, "tenant[%s]: %w", tenantID, err)
			}

			if !tnt.IsActive() {
				return errs.New(errs.PermissionDenied, fmt.Errorf("tenant[%s]: %w", tnt.Slug, ErrTenantInactive))
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
