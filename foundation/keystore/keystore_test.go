package keystore_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"testing/fstest"

	"github.com/jcpaschoal/autonet/foundation/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func privatePEM(t *testing.T) []byte {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(pk),
	})
}

func TestLoadByFileSystem(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"keys/54bb2165-71e1-41a6-af3e-7da4a0e1e2c1.pem": {Data: privatePEM(t)},
		"keys/README.md": {Data: []byte("ignored")},
	}

	ks := keystore.New()

	n, err := ks.LoadByFileSystem(fsys)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	priv, err := ks.PrivateKey("54bb2165-71e1-41a6-af3e-7da4a0e1e2c1")
	require.NoError(t, err)
	assert.Contains(t, priv, "PRIVATE KEY")

	pub, err := ks.PublicKey("54bb2165-71e1-41a6-af3e-7da4a0e1e2c1")
	require.NoError(t, err)
	assert.Contains(t, pub, "PUBLIC KEY")

	_, err = ks.PublicKey("unknown")
	assert.ErrorIs(t, err, keystore.ErrKeyNotFound)
}

func TestAddRejectsGarbage(t *testing.T) {
	t.Parallel()

	ks := keystore.New()
	assert.Error(t, ks.Add("bad", []byte("not a pem")))
}
