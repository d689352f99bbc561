package tenancy_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_SetThenGet(t *testing.T) {
	t.Parallel()

	for range 20 {
		id := uuid.New()

		tc := tenancy.NewContext()
		require.NoError(t, tc.SetTenant(id))

		got, err := tc.TenantID()
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestContext_SecondSetConflicts(t *testing.T) {
	t.Parallel()

	t1, t2 := uuid.New(), uuid.New()

	tc := tenancy.NewContext()
	require.NoError(t, tc.SetTenant(t1))

	err := tc.SetTenant(t2)
	require.ErrorIs(t, err, tenancy.ErrStateConflict)

	got, err := tc.TenantID()
	require.NoError(t, err)
	assert.Equal(t, t1, got, "first tenant must be kept")

	err = tc.SetTenant(t1)
	assert.ErrorIs(t, err, tenancy.ErrStateConflict, "setting the same tenant twice still conflicts")
}

func TestContext_NotInitialized(t *testing.T) {
	t.Parallel()

	t.Run("fresh", func(t *testing.T) {
		t.Parallel()

		_, err := tenancy.NewContext().TenantID()
		assert.ErrorIs(t, err, tenancy.ErrNotInitialized)
	})

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var tc tenancy.Context
		_, err := tc.TenantID()
		assert.ErrorIs(t, err, tenancy.ErrNotInitialized)
		assert.False(t, tc.HasTenant())
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		var tc *tenancy.Context
		_, err := tc.TenantID()
		assert.ErrorIs(t, err, tenancy.ErrNotInitialized)
	})

	t.Run("cleared", func(t *testing.T) {
		t.Parallel()

		tc := tenancy.NewContext()
		require.NoError(t, tc.SetTenant(uuid.New()))
		tc.Clear()

		_, err := tc.TenantID()
		assert.ErrorIs(t, err, tenancy.ErrNotInitialized)
	})
}

func TestContext_HasTenantAndClear(t *testing.T) {
	t.Parallel()

	tc := tenancy.NewContext()
	assert.False(t, tc.HasTenant())

	require.NoError(t, tc.SetTenant(uuid.New()))
	assert.True(t, tc.HasTenant())

	tc.Clear()
	assert.False(t, tc.HasTenant())

	next := uuid.New()
	require.NoError(t, tc.SetTenant(next), "a cleared context accepts a new tenant")

	got, err := tc.TenantID()
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestContext_RejectsNilID(t *testing.T) {
	t.Parallel()

	tc := tenancy.NewContext()
	assert.ErrorIs(t, tc.SetTenant(uuid.Nil), tenancy.ErrParseFailure)
	assert.False(t, tc.HasTenant())
}

func TestContext_NilReceiver(t *testing.T) {
	t.Parallel()

	var tc *tenancy.Context

	assert.ErrorIs(t, tc.SetTenant(uuid.New()), tenancy.ErrContextNotReady)
	assert.NotPanics(t, tc.Clear)
	assert.False(t, tc.HasTenant())

	_, err := tc.TenantID()
	assert.ErrorIs(t, err, tenancy.ErrNotInitialized)

	_, err = tc.Filter()
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
}

func TestContext_ConcurrentSetHasOneWinner(t *testing.T) {
	t.Parallel()

	tc := tenancy.NewContext()

	const n = 32
	ids := make([]uuid.UUID, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		ids[i] = uuid.New()
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = tc.SetTenant(ids[i])
		}()
	}
	wg.Wait()

	var winners int
	var winner uuid.UUID
	for i, err := range errs {
		if err == nil {
			winners++
			winner = ids[i]
			continue
		}
		assert.ErrorIs(t, err, tenancy.ErrStateConflict)
	}

	require.Equal(t, 1, winners)

	got, err := tc.TenantID()
	require.NoError(t, err)
	assert.Equal(t, winner, got)
}

func TestContext_Filter(t *testing.T) {
	t.Parallel()

	tc := tenancy.NewContext()

	_, err := tc.Filter()
	require.ErrorIs(t, err, tenancy.ErrContextNotReady)

	id := uuid.New()
	require.NoError(t, tc.SetTenant(id))

	f, err := tc.Filter()
	require.NoError(t, err)

	got, ok := f.TenantID()
	require.True(t, ok)
	assert.Equal(t, id, got)
}
