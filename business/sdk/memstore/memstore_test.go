package memstore_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/memstore"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Email    string
}

func newTable() *memstore.Table[row] {
	return memstore.New(
		func(r row) uuid.UUID { return r.ID },
		func(r row) uuid.UUID { return r.TenantID },
		memstore.Unique[row]{
			Name: "uq_tenant_email",
			Key:  func(r row) string { return r.TenantID.String() + "|" + r.Email },
		},
	)
}

func bypass(t *testing.T) tenancy.Filter {
	t.Helper()

	f, err := tenancy.Bypass().Filter()
	require.NoError(t, err)

	return f
}

func TestTable_Isolation(t *testing.T) {
	t.Parallel()

	t1, t2 := uuid.New(), uuid.New()
	tbl := newTable()

	r1 := row{ID: uuid.New(), TenantID: t1, Email: "a@x.com"}
	r2 := row{ID: uuid.New(), TenantID: t2, Email: "a@x.com"}

	require.NoError(t, tbl.Insert(tenancy.ForTenant(t1), r1))
	require.NoError(t, tbl.Insert(tenancy.ForTenant(t2), r2))

	byEmail := func(r row) bool { return r.Email == "a@x.com" }

	got, err := tbl.Select(tenancy.ForTenant(t1), byEmail, nil, page.MustParse("1", "10"))
	require.NoError(t, err)
	assert.Equal(t, []row{r1}, got)

	got, err = tbl.Select(tenancy.ForTenant(t2), byEmail, nil, page.MustParse("1", "10"))
	require.NoError(t, err)
	assert.Equal(t, []row{r2}, got)

	_, err = tbl.Get(tenancy.ForTenant(t2), r1.ID)
	assert.ErrorIs(t, err, memstore.ErrNotFound)

	n, err := tbl.Count(bypass(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTable_NotReady(t *testing.T) {
	t.Parallel()

	tbl := newTable()
	var zero tenancy.Filter

	_, err := tbl.Select(zero, nil, nil, page.MustParse("1", "10"))
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)

	_, err = tbl.Get(zero, uuid.New())
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)

	err = tbl.Insert(zero, row{ID: uuid.New(), TenantID: uuid.New()})
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
}

func TestTable_Writes(t *testing.T) {
	t.Parallel()

	t1, t2 := uuid.New(), uuid.New()
	tbl := newTable()

	r := row{ID: uuid.New(), TenantID: t1, Email: "b@x.com"}

	err := tbl.Insert(tenancy.ForTenant(t2), r)
	require.ErrorIs(t, err, tenancy.ErrCrossTenant)

	require.NoError(t, tbl.Insert(tenancy.ForTenant(t1), r))

	dup := row{ID: uuid.New(), TenantID: t1, Email: "b@x.com"}
	err = tbl.Insert(tenancy.ForTenant(t1), dup)
	var dupErr memstore.ErrDuplicate
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "uq_tenant_email", dupErr.Name)

	moved := r
	moved.TenantID = t2
	_, err = tbl.Update(bypass(t), moved)
	assert.ErrorIs(t, err, tenancy.ErrCrossTenant)

	r.Email = "c@x.com"
	n, err := tbl.Update(tenancy.ForTenant(t1), r)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = tbl.Delete(tenancy.ForTenant(t2), r.ID)
	assert.ErrorIs(t, err, memstore.ErrNotFound)

	n, err = tbl.Delete(tenancy.ForTenant(t1), r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTable_SelectPages(t *testing.T) {
	t.Parallel()

	t1 := uuid.New()
	tbl := newTable()

	for _, e := range []string{"d", "a", "c", "b", "e"} {
		require.NoError(t, tbl.Insert(tenancy.ForTenant(t1), row{ID: uuid.New(), TenantID: t1, Email: e}))
	}

	byEmail := func(a, b row) int { return strings.Compare(a.Email, b.Email) }

	got, err := tbl.Select(tenancy.ForTenant(t1), nil, byEmail, page.MustParse("2", "2"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Email)
	assert.Equal(t, "d", got[1].Email)

	got, err = tbl.Select(tenancy.ForTenant(t1), nil, byEmail, page.MustParse("4", "2"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
