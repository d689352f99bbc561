package referralbus_test

import (
	"testing"

	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 100 {
		code, err := referralbus.NewCode()
		require.NoError(t, err)
		require.True(t, referralbus.ValidCode(code), code)
		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 90)
}

func TestValidCode(t *testing.T) {
	t.Parallel()

	assert.True(t, referralbus.ValidCode("ABCD2345"))
	assert.False(t, referralbus.ValidCode("ABCD234"))
	assert.False(t, referralbus.ValidCode("ABCD2340"))
	assert.False(t, referralbus.ValidCode("abcd2345"))
	assert.Equal(t, "ABCD2345", referralbus.NormalizeCode(" abcd2345 "))
}
