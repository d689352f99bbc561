package tenantbus_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/business/types/tenantstatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTenant(t *testing.T, now time.Time) tenantbus.Tenant {
	t.Helper()

	tn, err := tenantbus.New(tenantbus.NewTenant{
		Slug: slug.MustParse("Demo-Network "),
		Name: name.MustParse("Demo Network"),
	}, now)
	require.NoError(t, err)

	return tn
}

func TestNew(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tn := newTenant(t, now)

	assert.Equal(t, "demo-network", tn.Slug.String())
	assert.Equal(t, tenantstatus.Active, tn.Status)
	assert.JSONEq(t, `{}`, string(tn.Configuration))
	assert.Equal(t, now, tn.CreatedAt)
	assert.Equal(t, now, tn.UpdatedAt)
	assert.NotEqual(t, tn.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	now := time.Now()

	_, err := tenantbus.New(tenantbus.NewTenant{Name: name.MustParse("Demo Network")}, now)
	assert.ErrorIs(t, err, tenantbus.ErrInvalidTenant)

	_, err = tenantbus.New(tenantbus.NewTenant{Slug: slug.MustParse("demo")}, now)
	assert.ErrorIs(t, err, tenantbus.ErrInvalidTenant)

	_, err = tenantbus.New(tenantbus.NewTenant{
		Slug:          slug.MustParse("demo"),
		Name:          name.MustParse("Demo Network"),
		Configuration: json.RawMessage(`[1,2]`),
	}, now)
	assert.ErrorIs(t, err, tenantbus.ErrInvalidTenant)
}

func TestTenant_NamedOperationsStampUpdatedAt(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		apply  func(tn *tenantbus.Tenant, now time.Time) error
		status tenantstatus.Status
	}{
		{
			name: "update details",
			apply: func(tn *tenantbus.Tenant, now time.Time) error {
				nme := name.MustParse("Renamed Network")
				tn.UpdateDetails(tenantbus.UpdateTenant{Name: &nme}, now)
				return nil
			},
			status: tenantstatus.Active,
		},
		{
			name: "update configuration",
			apply: func(tn *tenantbus.Tenant, now time.Time) error {
				return tn.UpdateConfiguration(json.RawMessage(`{"referralReward":50}`), now)
			},
			status: tenantstatus.Active,
		},
		{
			name: "suspend",
			apply: func(tn *tenantbus.Tenant, now time.Time) error {
				return tn.Suspend(now)
			},
			status: tenantstatus.Suspended,
		},
		{
			name: "deactivate",
			apply: func(tn *tenantbus.Tenant, now time.Time) error {
				tn.Deactivate(now)
				return nil
			},
			status: tenantstatus.Inactive,
		},
		{
			name: "activate",
			apply: func(tn *tenantbus.Tenant, now time.Time) error {
				tn.Deactivate(now.Add(-time.Minute))
				tn.Activate(now)
				return nil
			},
			status: tenantstatus.Active,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tn := newTenant(t, created)
			later := created.Add(time.Hour)

			require.NoError(t, tt.apply(&tn, later))
			assert.Equal(t, later, tn.UpdatedAt)
			assert.Equal(t, created, tn.CreatedAt)
			assert.Equal(t, tt.status, tn.Status)
		})
	}
}

func TestTenant_SuspendInactive(t *testing.T) {
	t.Parallel()

	created := time.Now()
	tn := newTenant(t, created)
	tn.Deactivate(created)

	err := tn.Suspend(created.Add(time.Minute))
	assert.ErrorIs(t, err, tenantbus.ErrInvalidTransition)
	assert.Equal(t, tenantstatus.Inactive, tn.Status)
	assert.Equal(t, created, tn.UpdatedAt)
}

func TestTenant_UpdateConfigurationRejectsNonObject(t *testing.T) {
	t.Parallel()

	created := time.Now()
	tn := newTenant(t, created)

	err := tn.UpdateConfiguration(json.RawMessage(`"text"`), created.Add(time.Minute))
	assert.ErrorIs(t, err, tenantbus.ErrInvalidTenant)
	assert.JSONEq(t, `{}`, string(tn.Configuration))
	assert.Equal(t, created, tn.UpdatedAt)
}
