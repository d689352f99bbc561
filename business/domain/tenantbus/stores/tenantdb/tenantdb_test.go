package tenantdb_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/business/types/tenantstatus"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"tenant_id", "slug", "name", "logo_url", "primary_color", "secondary_color",
	"status", "configuration", "created_at", "updated_at",
}

func newStore(t *testing.T) (*tenantdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return tenantdb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func TestStore_QueryBySlug(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(`SELECT (.+) FROM tenants WHERE slug = \$1`).
		WithArgs("demo-network").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "demo-network", "Demo Network", "https://cdn/logo.png", "#112233", nil, "ACTIVE", `{"a":1}`, now, now))

	got, err := store.QueryBySlug(context.Background(), slug.MustParse("demo-network"))
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "demo-network", got.Slug.String())
	assert.Equal(t, "https://cdn/logo.png", got.Branding.LogoURL)
	assert.Empty(t, got.Branding.SecondaryColor)
	assert.Equal(t, tenantstatus.Active, got.Status)
	assert.JSONEq(t, `{"a":1}`, string(got.Configuration))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryByIDNotFound(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM tenants WHERE tenant_id = \$1`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, tenantbus.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateDuplicateSlug(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	tn, err := tenantbus.New(tenantbus.NewTenant{Slug: slug.MustParse("demo"), Name: name.MustParse("Demo")}, time.Now())
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO tenants`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_tenant_slug"})

	err = store.Create(context.Background(), tn)
	assert.ErrorIs(t, err, tenantbus.ErrUniqueSlug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateMissing(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	tn, err := tenantbus.New(tenantbus.NewTenant{Slug: slug.MustParse("demo"), Name: name.MustParse("Demo")}, time.Now())
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE tenants SET (.+) WHERE tenant_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.Update(context.Background(), tn)
	assert.ErrorIs(t, err, tenantbus.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
