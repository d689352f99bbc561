package customerbus_test

import (
	"context"
	"io"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/domain/customerbus/stores/customermem"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCore() *customerbus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
	return customerbus.NewCore(log, customermem.NewStore())
}

func scoped(t *testing.T, core *customerbus.Core, tenantID uuid.UUID) *customerbus.Core {
	t.Helper()

	tc := tenancy.NewContext()
	require.NoError(t, tc.SetTenant(tenantID))

	return core.NewWithScope(tc)
}

func newCustomer(tenantID uuid.UUID, email string) customerbus.NewCustomer {
	return customerbus.NewCustomer{
		TenantID: tenantID,
		Name:     name.MustParse("Customer " + email),
		Email:    mail.Address{Address: email},
	}
}

func TestCore_ScopedQueryIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1, t2 := uuid.New(), uuid.New()

	c1, err := scoped(t, core, t1).Create(ctx, newCustomer(t1, "a@x.com"))
	require.NoError(t, err)

	c2, err := scoped(t, core, t2).Create(ctx, newCustomer(t2, "a@x.com"))
	require.NoError(t, err)

	email := mail.Address{Address: "a@x.com"}
	filter := customerbus.QueryFilter{Email: &email}

	got, err := scoped(t, core, t1).Query(ctx, filter, customerbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c1.ID, got[0].ID)

	got, err = scoped(t, core, t2).Query(ctx, filter, customerbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, c2.ID, got[0].ID)

	all, err := core.Bypass().Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, all)
}

func TestCore_CrossTenantReadIsNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1, t2 := uuid.New(), uuid.New()

	cus, err := scoped(t, core, t1).Create(ctx, newCustomer(t1, "a@x.com"))
	require.NoError(t, err)

	_, err = scoped(t, core, t2).QueryByEmail(ctx, mail.Address{Address: "a@x.com"})
	assert.ErrorIs(t, err, customerbus.ErrNotFound)
	assert.False(t, tenancy.IsIsolationError(err))

	_, err = scoped(t, core, t2).QueryByID(ctx, cus.ID)
	assert.ErrorIs(t, err, customerbus.ErrNotFound)
}

func TestCore_ContextNotReady(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()

	_, err := core.Query(ctx, customerbus.QueryFilter{}, customerbus.DefaultOrderBy, page.MustParse("1", "10"))
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)

	unset := core.NewWithScope(tenancy.NewContext())

	_, err = unset.QueryByID(ctx, uuid.New())
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)

	_, err = unset.Create(ctx, newCustomer(uuid.New(), "a@x.com"))
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
	assert.True(t, tenancy.IsIsolationError(err))
}

func TestCore_ScopeIsReadPerOperation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1 := uuid.New()

	tc := tenancy.NewContext()
	c := core.NewWithScope(tc)

	_, err := c.Count(ctx, customerbus.QueryFilter{})
	require.ErrorIs(t, err, tenancy.ErrContextNotReady)

	require.NoError(t, tc.SetTenant(t1))

	_, err = c.Create(ctx, newCustomer(t1, "late@x.com"))
	require.NoError(t, err)

	n, err := c.Count(ctx, customerbus.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCore_CrossTenantWrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1, t2 := uuid.New(), uuid.New()

	_, err := scoped(t, core, t1).Create(ctx, newCustomer(t2, "a@x.com"))
	assert.ErrorIs(t, err, tenancy.ErrCrossTenant)

	_, err = scoped(t, core, t1).Create(ctx, newCustomer(uuid.Nil, "a@x.com"))
	assert.ErrorIs(t, err, tenancy.ErrCrossTenant)

	cus, err := scoped(t, core, t1).Create(ctx, newCustomer(t1, "a@x.com"))
	require.NoError(t, err)

	nme := name.MustParse("Hijacked")
	_, err = scoped(t, core, t2).Update(ctx, cus, customerbus.UpdateCustomer{Name: &nme})
	assert.ErrorIs(t, err, tenancy.ErrCrossTenant)

	err = scoped(t, core, t2).Delete(ctx, cus)
	assert.ErrorIs(t, err, tenancy.ErrCrossTenant)

	got, err := scoped(t, core, t1).QueryByID(ctx, cus.ID)
	require.NoError(t, err)
	assert.Equal(t, cus.Name, got.Name)
}

func TestCore_UniqueEmailPerTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1 := uuid.New()

	_, err := scoped(t, core, t1).Create(ctx, newCustomer(t1, "a@x.com"))
	require.NoError(t, err)

	_, err = scoped(t, core, t1).Create(ctx, newCustomer(t1, "a@x.com"))
	assert.ErrorIs(t, err, customerbus.ErrUniqueEmail)
}

func TestCore_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1 := uuid.New()
	c := scoped(t, core, t1)

	cus, err := c.Create(ctx, newCustomer(t1, "a@x.com"))
	require.NoError(t, err)

	vehicle := customerbus.Vehicle{Make: "Honda", Model: "Civic", Year: 2018}
	upd, err := c.Update(ctx, cus, customerbus.UpdateCustomer{Vehicle: &vehicle})
	require.NoError(t, err)
	assert.True(t, !upd.UpdatedAt.Before(cus.UpdatedAt))

	got, err := c.QueryByID(ctx, cus.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicle, got.Vehicle)
	assert.Equal(t, t1, got.TenantID)

	require.NoError(t, c.Delete(ctx, got))

	_, err = c.QueryByID(ctx, cus.ID)
	assert.ErrorIs(t, err, customerbus.ErrNotFound)
}
