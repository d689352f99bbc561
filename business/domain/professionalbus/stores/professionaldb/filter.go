package professionaldb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

func applyFilter(scope tenancy.Filter, filter professionalbus.QueryFilter, data map[string]any, buf *bytes.Buffer) error {
	var wc []string

	clause, err := sqldb.TenantClause(scope, "tenant_id", data)
	if err != nil {
		return err
	}

	if clause != "" {
		wc = append(wc, clause)
	}

	if filter.ID != nil {
		data["professional_id"] = filter.ID.String()
		wc = append(wc, "professional_id = :professional_id")
	}

	if filter.Name != nil {
		data["name"] = fmt.Sprintf("%%%s%%", *filter.Name)
		wc = append(wc, "(name ILIKE :name OR business_name ILIKE :name)")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "lower(email) = lower(:email)")
	}

	if filter.Specialty != nil {
		data["specialty"] = filter.Specialty.String()
		wc = append(wc, "specialty = :specialty")
	}

	if filter.Enabled != nil {
		data["enabled"] = *filter.Enabled
		wc = append(wc, "enabled = :enabled")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}

	return nil
}
