package sqldb_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantClause(t *testing.T) {
	t.Parallel()

	t.Run("scoped", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		data := map[string]any{}

		clause, err := sqldb.TenantClause(tenancy.ForTenant(id), "c.tenant_id", data)
		require.NoError(t, err)

		assert.Equal(t, "c.tenant_id = :filter_tenant_id", clause)
		assert.Equal(t, id.String(), data[sqldb.TenantArg])
	})

	t.Run("bypass", func(t *testing.T) {
		t.Parallel()

		f, err := tenancy.Bypass().Filter()
		require.NoError(t, err)

		data := map[string]any{}
		clause, err := sqldb.TenantClause(f, "c.tenant_id", data)
		require.NoError(t, err)

		assert.Empty(t, clause)
		assert.Empty(t, data)
	})

	t.Run("not ready", func(t *testing.T) {
		t.Parallel()

		_, err := sqldb.TenantClause(tenancy.Filter{}, "c.tenant_id", map[string]any{})
		assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
	})
}

func TestErrDBDuplicatedEntry(t *testing.T) {
	t.Parallel()

	err := sqldb.ErrDBDuplicatedEntry{Column: "uq_tenant_slug"}
	assert.Equal(t, "duplicated entry: uq_tenant_slug", err.Error())
}
