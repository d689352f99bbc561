package tenancy_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Allows(t *testing.T) {
	t.Parallel()

	t1, t2 := uuid.New(), uuid.New()

	scoped := tenancy.ForTenant(t1)
	assert.True(t, scoped.Allows(t1))
	assert.False(t, scoped.Allows(t2))
	assert.False(t, scoped.IsBypass())

	bypass, err := tenancy.Bypass().Filter()
	require.NoError(t, err)
	assert.True(t, bypass.Allows(t1))
	assert.True(t, bypass.Allows(t2))
	assert.True(t, bypass.IsBypass())

	_, ok := bypass.TenantID()
	assert.False(t, ok)

	var zero tenancy.Filter
	assert.False(t, zero.Allows(t1))
	assert.False(t, zero.Allows(uuid.Nil))
	assert.ErrorIs(t, zero.Validate(), tenancy.ErrContextNotReady)
}

func TestFilter_CheckOwner(t *testing.T) {
	t.Parallel()

	t1, t2 := uuid.New(), uuid.New()

	f := tenancy.ForTenant(t1)
	assert.NoError(t, f.CheckOwner(t1))
	assert.ErrorIs(t, f.CheckOwner(t2), tenancy.ErrCrossTenant)
	assert.ErrorIs(t, f.CheckOwner(uuid.Nil), tenancy.ErrCrossTenant)

	bypass, err := tenancy.Bypass().Filter()
	require.NoError(t, err)
	assert.NoError(t, bypass.CheckOwner(t2))

	var zero tenancy.Filter
	assert.ErrorIs(t, zero.CheckOwner(t1), tenancy.ErrContextNotReady)
}

func TestUnscoped(t *testing.T) {
	t.Parallel()

	_, err := tenancy.Unscoped().Filter()
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
}

func TestIsIsolationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"conflict", fmt.Errorf("op: %w", tenancy.ErrStateConflict), true},
		{"not ready", fmt.Errorf("op: %w", tenancy.ErrContextNotReady), true},
		{"cross tenant", fmt.Errorf("op: %w", tenancy.ErrCrossTenant), true},
		{"not initialized", tenancy.ErrNotInitialized, false},
		{"parse", tenancy.ErrParseFailure, false},
		{"other", fmt.Errorf("customer not found"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tenancy.IsIsolationError(tt.err))
		})
	}
}
