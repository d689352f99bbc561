package userdb_test

import (
	"context"
	"io"
	"net/mail"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/role"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"user_id", "tenant_id", "name", "email", "role", "password_hash",
	"phone", "enabled", "created_at", "updated_at",
}

func newStore(t *testing.T) (*userdb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return userdb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func TestStore_QueryByEmailBypass(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	tenantID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE lower\(email\) = lower\(\$1\)$`).
		WithArgs("Staff@X.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), tenantID.String(), "Maria Costa", "staff@x.com", "STAFF", "$2a$10$hash", nil, true, now, now))

	f, err := tenancy.Bypass().Filter()
	require.NoError(t, err)

	usr, err := store.QueryByEmail(context.Background(), f, mail.Address{Address: "Staff@X.com"})
	require.NoError(t, err)

	assert.Equal(t, tenantID, usr.TenantID)
	assert.Equal(t, role.Staff, usr.Role)
	assert.Equal(t, []byte("$2a$10$hash"), usr.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryByIDScoped(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	id, tenantID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE tenant_id = \$1 AND user_id = \$2`).
		WithArgs(tenantID.String(), id.String()).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByID(context.Background(), tenancy.ForTenant(tenantID), id)
	assert.ErrorIs(t, err, userbus.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	usr := userbus.User{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		Name:         name.MustParse("Maria Costa"),
		Email:        mail.Address{Address: "staff@x.com"},
		Role:         role.Staff,
		PasswordHash: []byte("hash"),
		Enabled:      true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"})

	err := store.Create(context.Background(), tenancy.ForTenant(usr.TenantID), usr)
	assert.ErrorIs(t, err, userbus.ErrUniqueEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
