package referraldb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

func applyFilter(scope tenancy.Filter, filter referralbus.QueryFilter, data map[string]any, buf *bytes.Buffer) error {
	var wc []string

	clause, err := sqldb.TenantClause(scope, "tenant_id", data)
	if err != nil {
		return err
	}

	if clause != "" {
		wc = append(wc, clause)
	}

	if filter.ID != nil {
		data["referral_id"] = filter.ID.String()
		wc = append(wc, "referral_id = :referral_id")
	}

	if filter.Code != nil {
		data["code"] = *filter.Code
		wc = append(wc, "code = :code")
	}

	if filter.ReferrerID != nil {
		data["referrer_id"] = filter.ReferrerID.String()
		wc = append(wc, "referrer_id = :referrer_id")
	}

	if filter.ProfessionalID != nil {
		data["professional_id"] = filter.ProfessionalID.String()
		wc = append(wc, "professional_id = :professional_id")
	}

	if filter.Status != nil {
		data["status"] = filter.Status.String()
		wc = append(wc, "status = :status")
	}

	if filter.StartCreatedAt != nil {
		data["start_created_at"] = filter.StartCreatedAt.UTC()
		wc = append(wc, "created_at >= :start_created_at")
	}

	if filter.EndCreatedAt != nil {
		data["end_created_at"] = filter.EndCreatedAt.UTC()
		wc = append(wc, "created_at <= :end_created_at")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}

	return nil
}
