package authapp_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/domain/authapp"
	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus/stores/tenantmem"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/domain/userbus/stores/usermem"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/password"
	"github.com/jcpaschoal/autonet/business/types/role"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/foundation/keystore"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kid = "test-kid"

type fixture struct {
	handler   http.Handler
	auth      *auth.Auth
	tenantBus *tenantbus.Core
	north     tenantbus.Tenant
	south     tenantbus.Tenant
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	tenantBus := tenantbus.NewCore(log, tenantmem.NewStore())
	userBus := userbus.NewCore(log, usermem.NewStore())

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ks := keystore.New()
	require.NoError(t, ks.Add(kid, pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(pk)})))

	a := auth.New(auth.Config{
		Log:       log,
		UserBus:   userBus,
		KeyLookup: ks,
		Issuer:    "test",
	})

	newTenant := func(s string) tenantbus.Tenant {
		tnt, err := tenantBus.Create(ctx, tenantbus.NewTenant{
			Slug: slug.MustParse(s),
			Name: name.MustParse(s + " network"),
		})
		require.NoError(t, err)

		tc := tenancy.NewContext()
		require.NoError(t, tc.SetTenant(tnt.ID))

		_, err = userBus.NewWithScope(tc).Create(ctx, userbus.NewUser{
			TenantID: tnt.ID,
			Name:     name.MustParse("Manager " + s),
			Email:    mail.Address{Address: "manager@" + s + ".example.com"},
			Role:     role.Manager,
			Password: password.MustParse("gophers123"),
		})
		require.NoError(t, err)

		return tnt
	}

	north := newTenant("north")
	south := newTenant("south")

	app := web.NewApp(log.Info, nil, mid.Logger(log), mid.Errors(log), mid.Panics())

	authapp.Routes(app, authapp.Config{
		Log:       log,
		Auth:      a,
		ActiveKID: kid,
		TenantBus: tenantBus,
		Resolver:  tenancy.NewResolver(tenancy.SkipMalformed),
	})

	return fixture{
		handler:   app,
		auth:      a,
		tenantBus: tenantBus,
		north:     north,
		south:     south,
	}
}

func (f fixture) login(t *testing.T, email string, pass string, header string) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"email":"` + email + `","password":"` + pass + `"}`

	r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	if header != "" {
		r.Header.Set(tenancy.DefaultHeader, header)
	}

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, r)

	return w
}

func TestLogin_IssuesTenantToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w := f.login(t, "manager@north.example.com", "gophers123", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tkn authapp.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tkn))
	assert.Equal(t, f.north.ID.String(), tkn.TenantID)
	assert.Equal(t, role.Manager.String(), tkn.Role)

	claims, err := f.auth.Authenticate(context.Background(), "Bearer "+tkn.Token)
	require.NoError(t, err)
	assert.Equal(t, f.north.ID.String(), claims.TenantID)
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		email  string
		pass   string
		header func(f fixture) string
		status int
	}{
		{
			name:   "wrong password",
			email:  "manager@north.example.com",
			pass:   "not-the-password",
			status: http.StatusUnauthorized,
		},
		{
			name:   "unknown user",
			email:  "nobody@north.example.com",
			pass:   "gophers123",
			status: http.StatusUnauthorized,
		},
		{
			name:   "header names another tenant",
			email:  "manager@north.example.com",
			pass:   "gophers123",
			header: func(f fixture) string { return f.south.ID.String() },
			status: http.StatusUnauthorized,
		},
		{
			name:   "matching header",
			email:  "manager@north.example.com",
			pass:   "gophers123",
			header: func(f fixture) string { return f.north.ID.String() },
			status: http.StatusOK,
		},
		{
			name:   "malformed header is ignored",
			email:  "manager@north.example.com",
			pass:   "gophers123",
			header: func(fixture) string { return "not-a-uuid" },
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)

			var header string
			if tt.header != nil {
				header = tt.header(f)
			}

			w := f.login(t, tt.email, tt.pass, header)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestLogin_SuspendedTenant(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.tenantBus.Suspend(context.Background(), f.south)
	require.NoError(t, err)

	w := f.login(t, "manager@south.example.com", "gophers123", "")
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = f.login(t, "manager@north.example.com", "gophers123", uuid.NewString())
	assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
}
