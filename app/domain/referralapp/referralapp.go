// Package referralapp maintains the app layer api for the referral domain.
package referralapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/app/sdk/query"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/web"
)

type app struct {
	referralBus *referralbus.Core
}

func newApp(referralBus *referralbus.Core) *app {
	return &app{
		referralBus: referralBus,
	}
}

func (a *app) scoped(ctx context.Context) (*referralbus.Core, error) {
	bus := a.referralBus.NewWithScope(mid.GetTenant(ctx))

	tx, err := mid.GetTran(ctx)
	if err != nil {
		return bus, nil
	}

	return bus.NewWithTx(tx)
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewReferral
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenant(ctx).TenantID()
	if err != nil {
		return errs.Errorf(errs.Internal, "create: %w", err)
	}

	nr, err := toBusNewReferral(tenantID, app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	ref, err := bus.Create(ctx, nr)
	if err != nil {
		switch {
		case errors.Is(err, referralbus.ErrInvalidReferrer):
			return errs.NewFieldErrors("referrerID", referralbus.ErrInvalidReferrer)
		case errors.Is(err, referralbus.ErrInvalidProfessional):
			return errs.NewFieldErrors("professionalID", referralbus.ErrInvalidProfessional)
		case errors.Is(err, referralbus.ErrProfessionalDisabled):
			return errs.New(errs.FailedPrecondition, referralbus.ErrProfessionalDisabled)
		case errors.Is(err, referralbus.ErrCodeExhausted):
			return errs.New(errs.Unavailable, referralbus.ErrCodeExhausted)
		}
		return errs.Errorf(errs.Internal, "create: ref[%+v]: %w", nr, err)
	}

	return toAppReferral(ref)
}

func (a *app) updateStatus(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateStatus
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	status, err := toBusStatus(app)
	if err != nil {
		return errs.NewFieldErrors("status", err)
	}

	bus, ref, encErr := a.queryReferral(ctx, r)
	if encErr != nil {
		return encErr
	}

	updRef, err := bus.UpdateStatus(ctx, ref, status)
	if err != nil {
		if errors.Is(err, referralbus.ErrInvalidTransition) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.Internal, "updatestatus: referralID[%s] status[%s]: %w", ref.ID, status, err)
	}

	return toAppReferral(updRef)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	bus, ref, encErr := a.queryReferral(ctx, r)
	if encErr != nil {
		return encErr
	}

	if err := bus.Delete(ctx, ref); err != nil {
		return errs.Errorf(errs.Internal, "delete: referralID[%s]: %w", ref.ID, err)
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, referralbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	refs, err := bus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %w", err)
	}

	total, err := bus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %w", err)
	}

	return query.NewResult(toAppReferrals(refs), total, pg)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	_, ref, encErr := a.queryReferral(ctx, r)
	if encErr != nil {
		return encErr
	}

	return toAppReferral(ref)
}

func (a *app) queryByCode(ctx context.Context, r *http.Request) web.Encoder {
	code := web.Param(r, "code")

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	ref, err := bus.QueryByCode(ctx, code)
	if err != nil {
		if errors.Is(err, referralbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.Internal, "querybycode: code[%s]: %w", code, err)
	}

	return toAppReferral(ref)
}

func (a *app) queryReferral(ctx context.Context, r *http.Request) (*referralbus.Core, referralbus.Referral, *errs.Error) {
	referralID, err := uuid.Parse(web.Param(r, "referral_id"))
	if err != nil {
		return nil, referralbus.Referral{}, errs.NewFieldErrors("referral_id", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return nil, referralbus.Referral{}, errs.Errorf(errs.Internal, "scope: %w", err)
	}

	ref, err := bus.QueryByID(ctx, referralID)
	if err != nil {
		if errors.Is(err, referralbus.ErrNotFound) {
			return nil, referralbus.Referral{}, errs.New(errs.NotFound, err)
		}
		return nil, referralbus.Referral{}, errs.Errorf(errs.Internal, "querybyid: referralID[%s]: %w", referralID, err)
	}

	return bus, ref, nil
}
