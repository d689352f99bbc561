package mid

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/metrics"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jcpaschoal/autonet/foundation/otel"
)

// Errors handles errors coming out of the call chain. Isolation errors are
// counted and logged with the tenant of the request, then reported to the
// client without their detail.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			_, span := otel.AddSpan(ctx, "app.sdk.mid.error")
			span.RecordError(err)
			defer span.End()

			if tenancy.IsIsolationError(err) {
				kind := isolationKind(err)
				metrics.AddIsolationError(kind)
				log.Error(ctx, "tenant isolation", "kind", kind, "tenant", GetTenant(ctx).String(), "path", r.URL.Path, "err", err)

				return errs.New(errs.Internal, errors.New(http.StatusText(http.StatusInternalServerError)))
			}

			if errors.Is(err, tenancy.ErrNotInitialized) {
				log.Info(ctx, "tenant required", "path", r.URL.Path, "err", err)
				return errs.New(errs.FailedPrecondition, ErrTenantUnresolved)
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			log.Error(ctx, "handled error during request",
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if appErr.Code == errs.InternalOnlyLog {
				appErr = errs.Errorf(errs.Internal, "Internal Server Error")
			}

			// Send the error to the web package so the error can be
			// used as the response.
			return appErr
		}

		return h
	}

	return m
}

// isolationKind labels an error already classified by tenancy.IsIsolationError.
func isolationKind(err error) string {
	switch {
	case errors.Is(err, tenancy.ErrContextNotReady):
		return "not_ready"
	case errors.Is(err, tenancy.ErrCrossTenant):
		return "cross_tenant"
	case errors.Is(err, tenancy.ErrStateConflict):
		return "state_conflict"
	}

	return "unknown"
}
