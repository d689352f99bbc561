// Package authapp maintains the app layer api for issuing tokens.
package authapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/sdk/web"
)

type app struct {
	auth      *auth.Auth
	tenantBus *tenantbus.Core
	kid       string
}

func newApp(auth *auth.Auth, tenantBus *tenantbus.Core, kid string) *app {
	return &app{
		auth:      auth,
		tenantBus: tenantBus,
		kid:       kid,
	}
}

// login exchanges credentials for a token. When the request names a tenant
// the user must belong to it, and the tenant of the user must be active.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		if errors.Is(err, userbus.ErrAuthenticationFailure) {
			return errs.New(errs.Unauthenticated, userbus.ErrAuthenticationFailure)
		}
		return errs.Errorf(errs.Internal, "login: %w", err)
	}

	if tenantID, err := mid.GetTenant(ctx).TenantID(); err == nil && tenantID != usr.TenantID {
		return errs.New(errs.Unauthenticated, userbus.ErrAuthenticationFailure)
	}

	tnt, err := a.tenantBus.QueryByID(ctx, usr.TenantID)
	if err != nil {
		return errs.Errorf(errs.Internal, "login: tenant[%s]: %w", usr.TenantID, err)
	}

	if !tnt.IsActive() {
		return errs.New(errs.PermissionDenied, fmt.Errorf("tenant[%s]: %w", tnt.Slug, mid.ErrTenantInactive))
	}

	token, err := a.auth.GenerateToken(a.kid, usr)
	if err != nil {
		return errs.Errorf(errs.Internal, "generate token: %w", err)
	}

	return toAppToken(token, usr)
}
