package userdb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
)

func applyFilter(scope tenancy.Filter, filter userbus.QueryFilter, data map[string]any, buf *bytes.Buffer) error {
	var wc []string

	clause, err := sqldb.TenantClause(scope, "tenant_id", data)
	if err != nil {
		return err
	}

	if clause != "" {
		wc = append(wc, clause)
	}

	if filter.ID != nil {
		data["user_id"] = filter.ID.String()
		wc = append(wc, "user_id = :user_id")
	}

	if filter.Name != nil {
		data["name"] = fmt.Sprintf("%%%s%%", *filter.Name)
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Email != nil {
		data["email"] = filter.Email.Address
		wc = append(wc, "lower(email) = lower(:email)")
	}

	if filter.Role != nil {
		data["role"] = filter.Role.String()
		wc = append(wc, "role = :role")
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
