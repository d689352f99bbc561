package referralapp

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/types/referralstatus"
)

type queryParams struct {
	Page             string
	Rows             string
	OrderBy          string
	ID               string
	Code             string
	ReferrerID       string
	ProfessionalID   string
	Status           string
	StartCreatedDate string
	EndCreatedDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:             values.Get("page"),
		Rows:             values.Get("rows"),
		OrderBy:          values.Get("orderBy"),
		ID:               values.Get("referral_id"),
		Code:             values.Get("code"),
		ReferrerID:       values.Get("referrer_id"),
		ProfessionalID:   values.Get("professional_id"),
		Status:           values.Get("status"),
		StartCreatedDate: values.Get("start_created_date"),
		EndCreatedDate:   values.Get("end_created_date"),
	}
}

func parseFilter(qp queryParams) (referralbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter referralbus.QueryFilter

	parseID := func(field string, value string) *uuid.UUID {
		if value == "" {
			return nil
		}

		id, err := uuid.Parse(value)
		if err != nil {
			fieldErrors.Add(field, err)
			return nil
		}

		return &id
	}

	filter.ID = parseID("referral_id", qp.ID)
	filter.ReferrerID = parseID("referrer_id", qp.ReferrerID)
	filter.ProfessionalID = parseID("professional_id", qp.ProfessionalID)

	if qp.Code != "" {
		code := referralbus.NormalizeCode(qp.Code)
		filter.Code = &code
	}

	if qp.Status != "" {
		status, err := referralstatus.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &status
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.StartCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.StartCreatedDate)
		switch err {
		case nil:
			filter.StartCreatedAt = &t
		default:
			fieldErrors.Add("start_created_date", err)
		}
	}

	if qp.EndCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.EndCreatedDate)
		switch err {
		case nil:
			filter.EndCreatedAt = &t
		default:
			fieldErrors.Add("end_created_date", err)
		}
	}

	if fieldErrors != nil {
		return referralbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
