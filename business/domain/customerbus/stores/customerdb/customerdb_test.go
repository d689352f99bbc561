package customerdb_test

import (
	"context"
	"io"
	"net/mail"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/domain/customerbus/stores/customerdb"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"customer_id", "tenant_id", "name", "email", "phone",
	"vehicle_make", "vehicle_model", "vehicle_year", "created_at", "updated_at",
}

func newStore(t *testing.T) (*customerdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return customerdb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func TestStore_QueryAppliesTenantPredicate(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	tenantID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM customers WHERE tenant_id = \$1 AND lower\(email\) = lower\(\$2\) ORDER BY name ASC OFFSET \$3 ROWS FETCH NEXT \$4 ROWS ONLY`).
		WithArgs(tenantID.String(), "a@x.com", 0, 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), tenantID.String(), "Ana Souza", "a@x.com", nil, "Fiat", "Uno", 2010, now, now))

	email := mail.Address{Address: "a@x.com"}
	got, err := store.Query(context.Background(), tenancy.ForTenant(tenantID), customerbus.QueryFilter{Email: &email}, customerbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, tenantID, got[0].TenantID)
	assert.Equal(t, "Fiat", got[0].Vehicle.Make)
	assert.Equal(t, 2010, got[0].Vehicle.Year)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_BypassOmitsTenantPredicate(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	mock.ExpectQuery(`^SELECT count\(1\) FROM customers$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	f, err := tenancy.Bypass().Filter()
	require.NoError(t, err)

	n, err := store.Count(context.Background(), f, customerbus.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_NotReadyNeverQueries(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	_, err := store.QueryByID(context.Background(), tenancy.Filter{}, uuid.New())
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)

	_, err = store.Count(context.Background(), tenancy.Filter{}, customerbus.QueryFilter{})
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryByIDOtherTenantIsNotFound(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	id, tenantID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM customers WHERE tenant_id = \$1 AND customer_id = \$2`).
		WithArgs(tenantID.String(), id.String()).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByID(context.Background(), tenancy.ForTenant(tenantID), id)
	assert.ErrorIs(t, err, customerbus.ErrNotFound)
	assert.False(t, tenancy.IsIsolationError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Writes(t *testing.T) {
	t.Parallel()

	t1, t2 := uuid.New(), uuid.New()
	cus := customerbus.Customer{
		ID:        uuid.New(),
		TenantID:  t1,
		Name:      name.MustParse("Ana Souza"),
		Email:     mail.Address{Address: "a@x.com"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	t.Run("cross tenant create", func(t *testing.T) {
		store, mock := newStore(t)

		err := store.Create(context.Background(), tenancy.ForTenant(t2), cus)
		assert.ErrorIs(t, err, tenancy.ErrCrossTenant)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectExec(`INSERT INTO customers`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_customer_tenant_email"})

		err := store.Create(context.Background(), tenancy.ForTenant(t1), cus)
		assert.ErrorIs(t, err, customerbus.ErrUniqueEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update is pinned to owner", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectExec(`UPDATE customers SET (.+) WHERE customer_id = \$\d+ AND tenant_id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Update(context.Background(), tenancy.ForTenant(t1), cus)
		assert.ErrorIs(t, err, customerbus.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectExec(`DELETE FROM customers WHERE customer_id = \$1 AND tenant_id = \$2`).
			WithArgs(cus.ID.String(), cus.TenantID.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Delete(context.Background(), tenancy.ForTenant(t1), cus)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
