// Package tenantapp maintains the app layer api for administering tenants.
// Tenants are not tenant owned, so these handlers run without a tenant scope.
package tenantapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/query"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/web"
)

type app struct {
	tenantBus *tenantbus.Core
}

func newApp(tenantBus *tenantbus.Core) *app {
	return &app{
		tenantBus: tenantBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewTenant
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nt, err := toBusNewTenant(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := a.tenantBus.Create(ctx, nt)
	if err != nil {
		switch {
		case errors.Is(err, tenantbus.ErrUniqueSlug):
			return errs.New(errs.Aborted, tenantbus.ErrUniqueSlug)
		case errors.Is(err, tenantbus.ErrInvalidTenant):
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "create: slug[%s]: %w", nt.Slug, err)
	}

	return toAppTenant(t)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateTenant
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ut, err := toBusUpdateTenant(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, encErr := a.queryTenant(ctx, r)
	if encErr != nil {
		return encErr
	}

	updT, err := a.tenantBus.UpdateDetails(ctx, t, ut)
	if err != nil {
		return errs.Errorf(errs.Internal, "update: tenantID[%s]: %w", t.ID, err)
	}

	return toAppTenant(updT)
}

func (a *app) updateConfiguration(ctx context.Context, r *http.Request) web.Encoder {
	var app Configuration
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, encErr := a.queryTenant(ctx, r)
	if encErr != nil {
		return encErr
	}

	updT, err := a.tenantBus.UpdateConfiguration(ctx, t, app.Document)
	if err != nil {
		if errors.Is(err, tenantbus.ErrInvalidTenant) {
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "updateconfiguration: tenantID[%s]: %w", t.ID, err)
	}

	return toAppTenant(updT)
}

func (a *app) activate(ctx context.Context, r *http.Request) web.Encoder {
	return a.changeStatus(ctx, r, a.tenantBus.Activate)
}

func (a *app) suspend(ctx context.Context, r *http.Request) web.Encoder {
	return a.changeStatus(ctx, r, a.tenantBus.Suspend)
}

func (a *app) deactivate(ctx context.Context, r *http.Request) web.Encoder {
	return a.changeStatus(ctx, r, a.tenantBus.Deactivate)
}

func (a *app) changeStatus(ctx context.Context, r *http.Request, fn func(context.Context, tenantbus.Tenant) (tenantbus.Tenant, error)) web.Encoder {
	t, encErr := a.queryTenant(ctx, r)
	if encErr != nil {
		return encErr
	}

	updT, err := fn(ctx, t)
	if err != nil {
		if errors.Is(err, tenantbus.ErrInvalidTransition) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.Internal, "status: tenantID[%s]: %w", t.ID, err)
	}

	return toAppTenant(updT)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	t, encErr := a.queryTenant(ctx, r)
	if encErr != nil {
		return encErr
	}

	if err := a.tenantBus.Delete(ctx, t); err != nil {
		return errs.Errorf(errs.Internal, "delete: tenantID[%s]: %w", t.ID, err)
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, tenantbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	tenants, err := a.tenantBus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %w", err)
	}

	total, err := a.tenantBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %w", err)
	}

	return query.NewResult(toAppTenants(tenants), total, pg)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	t, encErr := a.queryTenant(ctx, r)
	if encErr != nil {
		return encErr
	}

	return toAppTenant(t)
}

func (a *app) queryTenant(ctx context.Context, r *http.Request) (tenantbus.Tenant, *errs.Error) {
	tenantID, err := uuid.Parse(web.Param(r, "tenant_id"))
	if err != nil {
		return tenantbus.Tenant{}, errs.NewFieldErrors("tenant_id", err)
	}

	t, err := a.tenantBus.QueryByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantbus.ErrNotFound) {
			return tenantbus.Tenant{}, errs.New(errs.NotFound, err)
		}
		return tenantbus.Tenant{}, errs.Errorf(errs.Internal, "querybyid: tenantID[%s]: %w", tenantID, err)
	}

	return t, nil
}
