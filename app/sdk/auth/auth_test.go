package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/domain/userbus/stores/usermem"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/password"
	"github.com/jcpaschoal/autonet/business/types/role"
	"github.com/jcpaschoal/autonet/foundation/keystore"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kid = "test-kid"

func newKeyStore(t *testing.T) *keystore.KeyStore {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(pk),
	}

	ks := keystore.New()
	require.NoError(t, ks.Add(kid, pem.EncodeToMemory(&block)))

	return ks
}

func TestAuth_GenerateAndAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	userBus := userbus.NewCore(log, usermem.NewStore())

	tenantID := uuid.New()
	tc := tenancy.NewContext()
	require.NoError(t, tc.SetTenant(tenantID))

	usr, err := userBus.NewWithScope(tc).Create(ctx, userbus.NewUser{
		TenantID: tenantID,
		Name:     name.MustParse("Maria Costa"),
		Email:    mail.Address{Address: "maria@x.com"},
		Role:     role.Manager,
		Password: password.MustParse("gophers123"),
	})
	require.NoError(t, err)

	a := auth.New(auth.Config{
		Log:       log,
		UserBus:   userBus,
		KeyLookup: newKeyStore(t),
		Issuer:    "autonet test",
	})

	logged, err := a.Login(ctx, mail.Address{Address: "maria@x.com"}, "gophers123")
	require.NoError(t, err)

	token, err := a.GenerateToken(kid, logged)
	require.NoError(t, err)

	claims, err := a.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)

	assert.Equal(t, usr.ID.String(), claims.Subject)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, role.Manager.String(), claims.Role)

	assert.NoError(t, a.Authorize(claims, role.Admin, role.Manager))
	assert.ErrorIs(t, a.Authorize(claims, role.Admin), auth.ErrForbidden)

	_, err = a.Authenticate(ctx, token)
	assert.Error(t, err)

	disabled := false
	_, err = userBus.NewWithScope(tc).Update(ctx, usr, userbus.UpdateUser{Enabled: &disabled})
	require.NoError(t, err)

	_, err = a.Authenticate(ctx, "Bearer "+token)
	assert.ErrorIs(t, err, auth.ErrUserDisabled)
}

func TestAuth_RejectsOtherIssuer(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
	ks := newKeyStore(t)

	issuer := auth.New(auth.Config{Log: log, KeyLookup: ks, Issuer: "someone else"})
	verifier := auth.New(auth.Config{Log: log, KeyLookup: ks, Issuer: "autonet test"})

	token, err := issuer.GenerateToken(kid, userbus.User{ID: uuid.New(), TenantID: uuid.New(), Role: role.Staff})
	require.NoError(t, err)

	_, err = verifier.Authenticate(ctx, "Bearer "+token)
	assert.Error(t, err)
}
