package mid

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus/stores/tenantmem"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
}

// capture is a terminal handler recording the tenant it observed.
type capture struct {
	called   bool
	tenantID uuid.UUID
	resolved bool
}

func (c *capture) handler(ctx context.Context, r *http.Request) web.Encoder {
	c.called = true
	c.tenantID, _ = GetTenant(ctx).TenantID()
	c.resolved = GetTenant(ctx).HasTenant()
	return nil
}

func runTenant(t *testing.T, policy tenancy.Policy, claimTenant string, headerTenant string) (*capture, web.Encoder) {
	t.Helper()

	ctx := context.Background()
	if claimTenant != "" {
		ctx = setClaims(ctx, auth.Claims{TenantID: claimTenant})
	}

	r := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
	if headerTenant != "" {
		r.Header.Set(tenancy.DefaultHeader, headerTenant)
	}

	var c capture
	h := Tenant(testLogger(), tenancy.NewResolver(policy), "")(c.handler)

	return &c, h(ctx, r)
}

func TestTenant_ClaimWinsOverHeader(t *testing.T) {
	t.Parallel()

	claim, header := uuid.New(), uuid.New()

	c, resp := runTenant(t, tenancy.SkipMalformed, claim.String(), header.String())
	require.Nil(t, resp)
	require.True(t, c.called)

	assert.True(t, c.resolved)
	assert.Equal(t, claim, c.tenantID)
}

func TestTenant_HeaderWithoutClaim(t *testing.T) {
	t.Parallel()

	header := uuid.New()

	c, resp := runTenant(t, tenancy.SkipMalformed, "", header.String())
	require.Nil(t, resp)

	assert.Equal(t, header, c.tenantID)
}

func TestTenant_MalformedClaim(t *testing.T) {
	t.Parallel()

	header := uuid.New()

	t.Run("skip falls through to header", func(t *testing.T) {
		c, resp := runTenant(t, tenancy.SkipMalformed, "not-a-uuid", header.String())
		require.Nil(t, resp)
		assert.Equal(t, header, c.tenantID)
	})

	t.Run("reject fails the request", func(t *testing.T) {
		c, resp := runTenant(t, tenancy.RejectMalformedTrusted, "not-a-uuid", header.String())
		assert.False(t, c.called)

		appErr, ok := resp.(*errs.Error)
		require.True(t, ok)
		assert.Equal(t, errs.Unauthenticated, appErr.Code)
		assert.ErrorIs(t, appErr, tenancy.ErrParseFailure)
	})

	t.Run("malformed header is skipped", func(t *testing.T) {
		c, resp := runTenant(t, tenancy.RejectMalformedTrusted, "", "garbage")
		require.Nil(t, resp)
		assert.True(t, c.called)
		assert.False(t, c.resolved)
	})
}

func TestTenant_NothingToResolve(t *testing.T) {
	t.Parallel()

	c, resp := runTenant(t, tenancy.SkipMalformed, "", "")
	require.Nil(t, resp)

	assert.True(t, c.called)
	assert.False(t, c.resolved)
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantBus := tenantbus.NewCore(testLogger(), tenantmem.NewStore())

	active, err := tenantBus.Create(ctx, tenantbus.NewTenant{
		Slug: slug.MustParse("active-net"),
		Name: name.MustParse("Active Network"),
	})
	require.NoError(t, err)

	suspended, err := tenantBus.Create(ctx, tenantbus.NewTenant{
		Slug: slug.MustParse("suspended-net"),
		Name: name.MustParse("Suspended Network"),
	})
	require.NoError(t, err)

	_, err = tenantBus.Suspend(ctx, suspended)
	require.NoError(t, err)

	run := func(tenantID uuid.UUID) (*capture, web.Encoder) {
		tc := tenancy.NewContext()
		if tenantID != uuid.Nil {
			require.NoError(t, tc.SetTenant(tenantID))
		}

		var c capture
		h := RequireTenant(tenantBus)(c.handler)

		return &c, h(setTenant(ctx, tc), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	tests := []struct {
		name     string
		tenantID uuid.UUID
		code     *errs.ErrCode
	}{
		{name: "active", tenantID: active.ID},
		{name: "suspended", tenantID: suspended.ID, code: &errs.PermissionDenied},
		{name: "unknown", tenantID: uuid.New(), code: &errs.NotFound},
		{name: "unresolved", tenantID: uuid.Nil, code: &errs.FailedPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, resp := run(tt.tenantID)

			if tt.code == nil {
				assert.Nil(t, resp)
				assert.True(t, c.called)
				return
			}

			assert.False(t, c.called)

			appErr, ok := resp.(*errs.Error)
			require.True(t, ok)
			assert.Equal(t, *tt.code, appErr.Code)
		})
	}
}

func TestErrors_IsolationIsHidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code errs.ErrCode
	}{
		{name: "context not ready", err: tenancy.ErrContextNotReady, code: errs.Internal},
		{name: "state conflict", err: tenancy.ErrStateConflict, code: errs.Internal},
		{name: "cross tenant", err: tenancy.ErrCrossTenant, code: errs.Internal},
		{name: "not initialized", err: tenancy.ErrNotInitialized, code: errs.FailedPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			failing := func(ctx context.Context, r *http.Request) web.Encoder {
				return errs.Errorf(errs.Internal, "query: %w", tt.err)
			}

			resp := Errors(testLogger())(failing)(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))

			appErr, ok := resp.(*errs.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			assert.NotContains(t, appErr.Message, tt.err.Error())
		})
	}
}

func TestErrors_NotInitializedIsTenantRequired(t *testing.T) {
	t.Parallel()

	failing := func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Errorf(errs.Internal, "query: %w", tenancy.ErrNotInitialized)
	}

	resp := Errors(testLogger())(failing)(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))

	appErr, ok := resp.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.FailedPrecondition, appErr.Code)
	assert.Equal(t, ErrTenantUnresolved.Error(), appErr.Message)
}
