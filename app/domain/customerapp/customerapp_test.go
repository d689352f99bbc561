package customerapp_test

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
	"github.com/jcpaschoal/autonet/app/domain/customerapp"
	"github.com/jcpaschoal/autonet/app/sdk/auth"
	"github.com/jcpaschoal/autonet/app/sdk/mid"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/domain/customerbus/stores/customermem"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus/stores/tenantmem"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/domain/userbus/stores/usermem"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
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

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type nopBeginner struct{}

func (nopBeginner) Begin() (sqldb.CommitRollbacker, error) { return nopTx{}, nil }

type fixture struct {
	handler http.Handler
	tenantA tenantbus.Tenant
	tenantB tenantbus.Tenant
	tokenA  string
	tokenB  string
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

	newTenant := func(s string) (tenantbus.Tenant, string) {
		tnt, err := tenantBus.Create(ctx, tenantbus.NewTenant{
			Slug: slug.MustParse(s),
			Name: name.MustParse(s + " network"),
		})
		require.NoError(t, err)

		tc := tenancy.NewContext()
		require.NoError(t, tc.SetTenant(tnt.ID))

		usr, err := userBus.NewWithScope(tc).Create(ctx, userbus.NewUser{
			TenantID: tnt.ID,
			Name:     name.MustParse("Staff " + s),
			Email:    mail.Address{Address: "staff@" + s + ".example.com"},
			Role:     role.Staff,
			Password: password.MustParse("gophers123"),
		})
		require.NoError(t, err)

		token, err := a.GenerateToken(kid, usr)
		require.NoError(t, err)

		return tnt, token
	}

	tenantA, tokenA := newTenant("north")
	tenantB, tokenB := newTenant("south")

	app := web.NewApp(log.Info, nil, mid.Logger(log), mid.Errors(log), mid.Panics())

	customerapp.Routes(app, customerapp.Config{
		Log:      log,
		Auth:     a,
		Beginner: nopBeginner{},
		TenantScope: []web.MidFunc{
			mid.Tenant(log, tenancy.NewResolver(tenancy.SkipMalformed), ""),
			mid.RequireTenant(tenantBus),
		},
		CustomerBus: customerbus.NewCore(log, customermem.NewStore()),
	})

	return fixture{
		handler: app,
		tenantA: tenantA,
		tenantB: tenantB,
		tokenA:  tokenA,
		tokenB:  tokenB,
	}
}

func (f fixture) do(t *testing.T, method string, path string, token string, header string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, path, rdr)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	if header != "" {
		r.Header.Set(tenancy.DefaultHeader, header)
	}

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, r)

	return w
}

func TestCustomers_ClaimTenantWins(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	body := `{"name":"Ana Souza","email":"ana@example.com","vehicle":{"make":"Fiat","model":"Uno","year":2012}}`

	w := f.do(t, http.MethodPost, "/v1/customers", f.tokenA, f.tenantB.ID.String(), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cus customerapp.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cus))

	assert.Equal(t, f.tenantA.ID.String(), cus.TenantID)
	assert.Equal(t, "Fiat", cus.Vehicle.Make)
}

func TestCustomers_OtherTenantCannotSee(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/v1/customers", f.tokenA, "", `{"name":"Ana Souza","email":"ana@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cus customerapp.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cus))

	w = f.do(t, http.MethodGet, "/v1/customers/"+cus.ID, f.tokenB, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/v1/customers/"+cus.ID, f.tokenB, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/v1/customers", f.tokenB, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Items []customerapp.Customer `json:"items"`
		Total int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Total)

	w = f.do(t, http.MethodGet, "/v1/customers/"+cus.ID, f.tokenA, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomers_RequiresAuthentication(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/v1/customers", "", f.tenantA.ID.String(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/v1/customers/"+uuid.NewString(), f.tokenA, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
