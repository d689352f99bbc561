package tenantapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/business/types/tenantstatus"
)

type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
	ID      string
	Slug    string
	Name    string
	Status  string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
		ID:      values.Get("tenant_id"),
		Slug:    values.Get("slug"),
		Name:    values.Get("name"),
		Status:  values.Get("status"),
	}
}

func parseFilter(qp queryParams) (tenantbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter tenantbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("tenant_id", err)
		}
	}

	if qp.Slug != "" {
		slg, err := slug.Parse(qp.Slug)
		switch err {
		case nil:
			filter.Slug = &slg
		default:
			fieldErrors.Add("slug", err)
		}
	}

	if qp.Name != "" {
		filter.Name = &qp.Name
	}

	if qp.Status != "" {
		status, err := tenantstatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &status
		default:
			fieldErrors.Add("status", err)
		}
	}

	if fieldErrors != nil {
		return tenantbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
