package professionalbus_test

import (
	"context"
	"io"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus/stores/professionalmem"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/specialty"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCore() *professionalbus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
	return professionalbus.NewCore(log, professionalmem.NewStore())
}

func scoped(t *testing.T, core *professionalbus.Core, tenantID uuid.UUID) *professionalbus.Core {
	t.Helper()

	tc := tenancy.NewContext()
	require.NoError(t, tc.SetTenant(tenantID))

	return core.NewWithScope(tc)
}

func newProfessional(tenantID uuid.UUID, email string, spc specialty.Specialty) professionalbus.NewProfessional {
	return professionalbus.NewProfessional{
		TenantID:     tenantID,
		Name:         name.MustParse("Pro " + email),
		BusinessName: "Garage " + email,
		Email:        mail.Address{Address: email},
		Specialty:    spc,
	}
}

func TestCore_Isolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1, t2 := uuid.New(), uuid.New()

	p1, err := scoped(t, core, t1).Create(ctx, newProfessional(t1, "pro@x.com", specialty.Mechanic))
	require.NoError(t, err)
	assert.True(t, p1.Enabled)

	_, err = scoped(t, core, t2).Create(ctx, newProfessional(t2, "pro@x.com", specialty.Tires))
	require.NoError(t, err)

	got, err := scoped(t, core, t1).Query(ctx, professionalbus.QueryFilter{}, professionalbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p1.ID, got[0].ID)

	_, err = scoped(t, core, t2).QueryByID(ctx, p1.ID)
	assert.ErrorIs(t, err, professionalbus.ErrNotFound)

	_, err = core.QueryByID(ctx, p1.ID)
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
}

func TestCore_FilterBySpecialty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1 := uuid.New()
	c := scoped(t, core, t1)

	_, err := c.Create(ctx, newProfessional(t1, "a@x.com", specialty.Mechanic))
	require.NoError(t, err)
	b, err := c.Create(ctx, newProfessional(t1, "b@x.com", specialty.Bodywork))
	require.NoError(t, err)

	spc := specialty.Bodywork
	got, err := c.Query(ctx, professionalbus.QueryFilter{Specialty: &spc}, professionalbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	disabled := false
	_, err = c.Update(ctx, b, professionalbus.UpdateProfessional{Enabled: &disabled})
	require.NoError(t, err)

	enabled := true
	n, err := c.Count(ctx, professionalbus.QueryFilter{Enabled: &enabled})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCore_CrossTenantWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1, t2 := uuid.New(), uuid.New()

	_, err := scoped(t, core, t1).Create(ctx, newProfessional(t2, "a@x.com", specialty.Mechanic))
	assert.ErrorIs(t, err, tenancy.ErrCrossTenant)

	prf, err := core.Bypass().Create(ctx, newProfessional(t2, "a@x.com", specialty.Mechanic))
	require.NoError(t, err)

	err = scoped(t, core, t1).Delete(ctx, prf)
	assert.ErrorIs(t, err, tenancy.ErrCrossTenant)

	require.NoError(t, scoped(t, core, t2).Delete(ctx, prf))
}

func TestCore_UniqueEmailPerTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	core := newCore()
	t1 := uuid.New()

	_, err := scoped(t, core, t1).Create(ctx, newProfessional(t1, "a@x.com", specialty.Mechanic))
	require.NoError(t, err)

	_, err = scoped(t, core, t1).Create(ctx, newProfessional(t1, "A@x.com", specialty.Tires))
	assert.ErrorIs(t, err, professionalbus.ErrUniqueEmail)
}
