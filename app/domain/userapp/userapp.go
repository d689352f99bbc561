// Package userapp maintains the app layer api for the user domain.
package userapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/app/sdk/query"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/business/types/role"
)

// ErrAdminGrant is returned when a non admin tries to hand out the admin role.
var ErrAdminGrant = errors.New("only an admin can grant the admin role")

type app struct {
	userBus *userbus.Core
}

func newApp(userBus *userbus.Core) *app {
	return &app{
		userBus: userBus,
	}
}

func (a *app) scoped(ctx context.Context) (*userbus.Core, error) {
	bus := a.userBus.NewWithScope(mid.GetTenant(ctx))

	tx, err := mid.GetTran(ctx)
	if err != nil {
		return bus, nil
	}

	return bus.NewWithTx(tx)
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenant(ctx).TenantID()
	if err != nil {
		return errs.Errorf(errs.Internal, "create: %w", err)
	}

	nu, err := toBusNewUser(tenantID, app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := checkGrant(ctx, nu.Role); err != nil {
		return err
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	usr, err := bus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.Internal, "create: email[%s]: %w", nu.Email.Address, err)
	}

	return toAppUser(usr)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if uu.Role != nil {
		if err := checkGrant(ctx, *uu.Role); err != nil {
			return err
		}
	}

	bus, usr, encErr := a.queryUser(ctx, r)
	if encErr != nil {
		return encErr
	}

	updUsr, err := bus.Update(ctx, usr, uu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.Internal, "update: userID[%s]: %w", usr.ID, err)
	}

	return toAppUser(updUsr)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	bus, usr, encErr := a.queryUser(ctx, r)
	if encErr != nil {
		return encErr
	}

	if callerID, err := mid.GetUserID(ctx); err == nil && callerID == usr.ID {
		return errs.New(errs.FailedPrecondition, errors.New("users cannot delete themselves"))
	}

	if err := bus.Delete(ctx, usr); err != nil {
		return errs.Errorf(errs.Internal, "delete: userID[%s]: %w", usr.ID, err)
	}

	return nil
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		if v, ok := err.(*errs.Error); ok {
			return v
		}
		return errs.NewFieldErrors("filter", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	usrs, err := bus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %w", err)
	}

	total, err := bus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %w", err)
	}

	return query.NewResult(toAppUsers(usrs), total, pg)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	_, usr, encErr := a.queryUser(ctx, r)
	if encErr != nil {
		return encErr
	}

	return toAppUser(usr)
}

func (a *app) queryUser(ctx context.Context, r *http.Request) (*userbus.Core, userbus.User, *errs.Error) {
	userID, err := uuid.Parse(web.Param(r, "user_id"))
	if err != nil {
		return nil, userbus.User{}, errs.NewFieldErrors("user_id", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return nil, userbus.User{}, errs.Errorf(errs.Internal, "scope: %w", err)
	}

	usr, err := bus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return nil, userbus.User{}, errs.New(errs.NotFound, err)
		}
		return nil, userbus.User{}, errs.Errorf(errs.Internal, "querybyid: userID[%s]: %w", userID, err)
	}

	return bus, usr, nil
}

func checkGrant(ctx context.Context, rle role.Role) *errs.Error {
	if rle.Equal(role.Admin) && mid.GetClaims(ctx).Role != role.Admin.String() {
		return errs.New(errs.PermissionDenied, ErrAdminGrant)
	}

	return nil
}
