// Package customerapp maintains the app layer api for the customer domain.
package customerapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/app/sdk/query"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/web"
)

type app struct {
	customerBus *customerbus.Core
}

func newApp(customerBus *customerbus.Core) *app {
	return &app{
		customerBus: customerBus,
	}
}

// scoped returns the customer core bound to the tenant of the request and to
// its transaction when one was started.
func (a *app) scoped(ctx context.Context) (*customerbus.Core, error) {
	bus := a.customerBus.NewWithScope(mid.GetTenant(ctx))

	tx, err := mid.GetTran(ctx)
	if err != nil {
		return bus, nil
	}

	return bus.NewWithTx(tx)
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewCustomer
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenant(ctx).TenantID()
	if err != nil {
		return errs.Errorf(errs.Internal, "create: %w", err)
	}

	nc, err := toBusNewCustomer(tenantID, app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	cus, err := bus.Create(ctx, nc)
	if err != nil {
		if errors.Is(err, customerbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, customerbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.Internal, "create: cus[%+v]: %w", nc, err)
	}

	return toAppCustomer(cus)
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateCustomer
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uc, err := toBusUpdateCustomer(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bus, cus, encErr := a.queryCustomer(ctx, r)
	if encErr != nil {
		return encErr
	}

	updCus, err := bus.Update(ctx, cus, uc)
	if err != nil {
		if errors.Is(err, customerbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, customerbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.Internal, "update: customerID[%s] uc[%+v]: %w", cus.ID, uc, err)
	}

	return toAppCustomer(updCus)
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	bus, cus, encErr := a.queryCustomer(ctx, r)
	if encErr != nil {
		return encErr
	}

	if err := bus.Delete(ctx, cus); err != nil {
		return errs.Errorf(errs.Internal, "delete: customerID[%s]: %w", cus.ID, err)
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, customerbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "scope: %w", err)
	}

	customers, err := bus.Query(ctx, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %w", err)
	}

	total, err := bus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %w", err)
	}

	return query.NewResult(toAppCustomers(customers), total, pg)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	_, cus, encErr := a.queryCustomer(ctx, r)
	if encErr != nil {
		return encErr
	}

	return toAppCustomer(cus)
}

// queryCustomer loads the customer named by the path. A customer of another
// tenant is reported as not found.
func (a *app) queryCustomer(ctx context.Context, r *http.Request) (*customerbus.Core, customerbus.Customer, *errs.Error) {
	customerID, err := uuid.Parse(web.Param(r, "customer_id"))
	if err != nil {
		return nil, customerbus.Customer{}, errs.NewFieldErrors("customer_id", err)
	}

	bus, err := a.scoped(ctx)
	if err != nil {
		return nil, customerbus.Customer{}, errs.Errorf(errs.Internal, "scope: %w", err)
	}

	cus, err := bus.QueryByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerbus.ErrNotFound) {
			return nil, customerbus.Customer{}, errs.New(errs.NotFound, err)
		}
		return nil, customerbus.Customer{}, errs.Errorf(errs.Internal, "querybyid: customerID[%s]: %w", customerID, err)
	}

	return bus, cus, nil
}
