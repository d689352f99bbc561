package mid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/foundation/logger"
)

// Logger writes information about the request to the logs. It also opens the
// request scope by placing an unset tenant context in ctx, so the tenant
// resolved further down the chain is reported when the request completes.
func Logger(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			tc := GetTenant(ctx)
			ctx = setTenant(ctx, tc)

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = fmt.Sprintf("%s?%s", path, r.URL.RawQuery)
			}

			log.Info(ctx, "request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)
			err := isError(resp)

			var statusCode = http.StatusOK
			if err != nil {
				statusCode = http.StatusInternalServerError

				if v, ok := resp.(interface{ HTTPStatus() int }); ok {
					statusCode = v.HTTPStatus()
				}
			}

			log.Info(ctx, "request completed", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr,
				"tenant", tc.String(), "statuscode", statusCode, "since", time.Since(now).String())

			return resp
		}

		return h
	}

	return m
}
