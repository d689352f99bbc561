package professionalapp

import (
	"net/http"
	"net/mail"
	"strconv"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/types/specialty"
)

type queryParams struct {
	Page      string
	Rows      string
	OrderBy   string
	ID        string
	Name      string
	Email     string
	Specialty string
	Enabled   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:      values.Get("page"),
		Rows:      values.Get("rows"),
		OrderBy:   values.Get("orderBy"),
		ID:        values.Get("professional_id"),
		Name:      values.Get("name"),
		Email:     values.Get("email"),
		Specialty: values.Get("specialty"),
		Enabled:   values.Get("enabled"),
	}
}

func parseFilter(qp queryParams) (professionalbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter professionalbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("professional_id", err)
		}
	}

	if qp.Name != "" {
		filter.Name = &qp.Name
	}

	if qp.Email != "" {
		addr, err := mail.ParseAddress(qp.Email)
		switch err {
		case nil:
			filter.Email = addr
		default:
			fieldErrors.Add("email", err)
		}
	}

	if qp.Specialty != "" {
		spc, err := specialty.Parse(qp.Specialty)
		switch err {
		case nil:
			filter.Specialty = &spc
		default:
			fieldErrors.Add("specialty", err)
		}
	}

	if qp.Enabled != "" {
		enabled, err := strconv.ParseBool(qp.Enabled)
		switch err {
		case nil:
			filter.Enabled = &enabled
		default:
			fieldErrors.Add("enabled", err)
		}
	}

	if fieldErrors != nil {
		return professionalbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
