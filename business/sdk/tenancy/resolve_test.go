package tenancy_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claim(v string) tenancy.Candidate {
	return tenancy.Candidate{Source: tenancy.SourceClaim, Value: v, Trusted: true}
}

func header(v string) tenancy.Candidate {
	return tenancy.Candidate{Source: tenancy.SourceHeader, Value: v}
}

func TestResolve_Precedence(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()

	tc := tenancy.NewContext()
	res, err := tenancy.NewResolver(tenancy.SkipMalformed).Resolve(tc, claim(a.String()), header(b.String()))
	require.NoError(t, err)

	assert.True(t, res.Resolved)
	assert.Equal(t, tenancy.SourceClaim, res.Source)

	got, err := tc.TenantID()
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestResolve_HeaderFallback(t *testing.T) {
	t.Parallel()

	b := uuid.New()

	tests := []struct {
		name  string
		claim string
	}{
		{"no claim", ""},
		{"blank claim", "   "},
		{"malformed claim", "not-a-uuid"},
		{"nil claim", uuid.Nil.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tc := tenancy.NewContext()
			res, err := tenancy.NewResolver(tenancy.SkipMalformed).Resolve(tc, claim(tt.claim), header(b.String()))
			require.NoError(t, err)

			assert.Equal(t, tenancy.SourceHeader, res.Source)

			got, err := tc.TenantID()
			require.NoError(t, err)
			assert.Equal(t, b, got)
		})
	}
}

func TestResolve_Absence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []tenancy.Candidate
		skipped    []string
	}{
		{"nothing", nil, nil},
		{"empty values", []tenancy.Candidate{claim(""), header("")}, nil},
		{"malformed values", []tenancy.Candidate{claim("x"), header("42")}, []string{tenancy.SourceClaim, tenancy.SourceHeader}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tc := tenancy.NewContext()
			res, err := tenancy.NewResolver(tenancy.SkipMalformed).Resolve(tc, tt.candidates...)
			require.NoError(t, err)

			assert.False(t, res.Resolved)
			assert.Equal(t, tt.skipped, res.Skipped)
			assert.False(t, tc.HasTenant())
		})
	}
}

func TestResolve_RejectMalformedTrusted(t *testing.T) {
	t.Parallel()

	r := tenancy.NewResolver(tenancy.RejectMalformedTrusted)

	t.Run("malformed claim fails", func(t *testing.T) {
		t.Parallel()

		tc := tenancy.NewContext()
		_, err := r.Resolve(tc, claim("forged"), header(uuid.NewString()))
		require.ErrorIs(t, err, tenancy.ErrParseFailure)
		assert.False(t, tc.HasTenant())
	})

	t.Run("malformed header still skipped", func(t *testing.T) {
		t.Parallel()

		tc := tenancy.NewContext()
		res, err := r.Resolve(tc, claim(""), header("garbage"))
		require.NoError(t, err)
		assert.False(t, res.Resolved)
		assert.Equal(t, []string{tenancy.SourceHeader}, res.Skipped)
	})
}

func TestResolve_PresetIsNoop(t *testing.T) {
	t.Parallel()

	preset := uuid.New()

	tc := tenancy.NewContext()
	require.NoError(t, tc.SetTenant(preset))

	res, err := tenancy.NewResolver(tenancy.SkipMalformed).Resolve(tc, claim(uuid.NewString()), header(uuid.NewString()))
	require.NoError(t, err, "resolution must not call SetTenant a second time")

	assert.True(t, res.Preset)
	assert.Equal(t, preset, res.TenantID)

	got, err := tc.TenantID()
	require.NoError(t, err)
	assert.Equal(t, preset, got)
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	p, err := tenancy.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, tenancy.SkipMalformed, p)

	p, err = tenancy.ParsePolicy("REJECT")
	require.NoError(t, err)
	assert.Equal(t, tenancy.RejectMalformedTrusted, p)
	assert.Equal(t, "reject", p.String())

	_, err = tenancy.ParsePolicy("maybe")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	got, err := tenancy.ParseID("  " + id.String() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = tenancy.ParseID("zzz")
	assert.ErrorIs(t, err, tenancy.ErrParseFailure)
}
