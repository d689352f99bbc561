package order_test

import (
	"testing"

	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fields = map[string]string{
	"name":  "b",
	"email": "c",
}

func TestParse(t *testing.T) {
	t.Parallel()

	def := order.NewBy("a", order.ASC)

	by, err := order.Parse(fields, "", def)
	require.NoError(t, err)
	assert.Equal(t, def, by)

	by, err = order.Parse(fields, "name", def)
	require.NoError(t, err)
	assert.Equal(t, order.NewBy("b", order.ASC), by)

	by, err = order.Parse(fields, "email, desc", def)
	require.NoError(t, err)
	assert.Equal(t, order.NewBy("c", order.DESC), by)

	_, err = order.Parse(fields, "phone", def)
	assert.Error(t, err)

	_, err = order.Parse(fields, "name,sideways", def)
	assert.Error(t, err)

	_, err = order.Parse(fields, "name,ASC,extra", def)
	assert.Error(t, err)
}

func TestNewByDefaultsDirection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, order.ASC, order.NewBy("a", "bogus").Direction)
}
