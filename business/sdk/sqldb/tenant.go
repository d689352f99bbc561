package sqldb

import "github.com/jcpaschoal/autonet/business/sdk/tenancy"

// TenantArg is the named parameter holding the tenant of a scoped query.
const TenantArg = "filter_tenant_id"

// TenantClause returns the predicate restricting a statement to the tenant
// of the filter and records its value in data. A bypass filter yields an
// empty predicate. A filter that isn't ready is an error, never an
// unrestricted statement.
func TenantClause(f tenancy.Filter, column string, data map[string]any) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	id, ok := f.TenantID()
	if !ok {
		return "", nil
	}

	data[TenantArg] = id.String()

	return column + " = :" + TenantArg, nil
}
