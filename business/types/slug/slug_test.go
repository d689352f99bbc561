package slug_test

import (
	"testing"

	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mixed case trailing space", "Demo-Network ", "demo-network"},
		{"leading space", "  acme", "acme"},
		{"diacritics", "Oficina-São-João", "oficina-sao-joao"},
		{"digits", "garage-42", "garage-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := slug.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "demo network", "-demo", "demo--network", "demo_network", "demo-"} {
		_, err := slug.Parse(input)
		assert.Error(t, err, "input %q", input)
	}

	long := make([]byte, slug.MaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := slug.Parse(string(long))
	assert.Error(t, err)
}

func TestFromName(t *testing.T) {
	t.Parallel()

	got, err := slug.FromName("  Auto Center Ébano & Filhos! ")
	require.NoError(t, err)
	assert.Equal(t, "auto-center-ebano-filhos", got.String())

	_, err = slug.FromName("!!!")
	assert.Error(t, err)
}
