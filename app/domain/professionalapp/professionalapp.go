// Package professionalapp maintains the app layer api for the professional
// domain.
package professionalapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/app/sdk/query"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/web"
)

type app struct {
	professionalBus *professionalbus.Core
}

func newApp(professionalBus *professionalbus.Core) *app {
	return &app{
		professionalBus: professionalBus,
	}
}

func (a *app) scoped(ctx context.Context) (*professionalbus.Core, error) {
	bus := a.professionalBus.NewWithScope(mid.GetTenant(ctx))

	tx, err := mid.GetTran(ctx)
	if err != nil {
		return bus, nil
	}

	return bus.NewWithTx(tx)
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewProfessional
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenant(ctx).TenantID()
	if err != nil {
		return errs.Errorf(errs.Internal, "create: %w", err)
	}

	np, err := toBusNewProfessional(tenantID, app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	prf, err := bus.Create(ctx, np)
	if err != nil {
		if errors.Is(err, professionalbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, professionalbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.Internal, "create: prf[%+v]: %w", np, err)
	}

	return toAppProfessional(prf)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateProfessional
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	up, err := toBusUpdateProfessional(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, prf, encErr := a.queryProfessional(ctx, r)
	if encErr != nil {
		return encErr
	}

	updPrf, err := bus.Update(ctx, prf, up)
	if err != nil {
		if errors.Is(err, professionalbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, professionalbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.Internal, "update: professionalID[%s] up[%+v]: %w", prf.ID, up, err)
	}

	return toAppProfessional(updPrf)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	bus, prf, encErr := a.queryProfessional(ctx, r)
	if encErr != nil {
		return encErr
	}

	if err := bus.Delete(ctx, prf); err != nil {
		return errs.Errorf(errs.Internal, "delete: professionalID[%s]: %w", prf.ID, err)
	}

	return nil
}

// directory lists the professionals of the tenant named by the request. It
// is public, so only professionals accepting referrals are listed.
func (a *app) directory(ctx context.Context, r *http.Request) web.Encoder {
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

	enabled := true
	filter.Enabled = &enabled

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, professionalbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	prfs, err := bus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %w", err)
	}

	total, err := bus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %w", err)
	}

	return query.NewResult(toAppProfessionals(prfs), total, pg)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	_, prf, encErr := a.queryProfessional(ctx, r)
	if encErr != nil {
		return encErr
	}

	return toAppProfessional(prf)
}

func (a *app) queryProfessional(ctx context.Context, r *http.Request) (*professionalbus.Core, professionalbus.Professional, *errs.Error) {
	professionalID, err := uuid.Parse(web.Param(r, "professional_id"))
	if err != nil {
		return nil, professionalbus.Professional{}, errs.NewFieldErrors("professional_id", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return nil, professionalbus.Professional{}, errs.Errorf(errs.Internal, "scope: %w", err)
	}

	prf, err := bus.QueryByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, professionalbus.ErrNotFound) {
			return nil, professionalbus.Professional{}, errs.New(errs.NotFound, err)
		}
		return nil, professionalbus.Professional{}, errs.Errorf(errs.Internal, "querybyid: professionalID[%s]: %w", professionalID, err)
	}

	return bus, prf, nil
}
