package referraldb_test

import (
	"context"
	"io"
	"net/mail"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/domain/referralbus/stores/referraldb"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/referralstatus"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"referral_id", "tenant_id", "code", "referrer_id", "professional_id",
	"referred_name", "referred_email", "status", "created_at", "updated_at",
}

func newStore(t *testing.T) (*referraldb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return referraldb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func TestStore_QueryByStatus(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	tenantID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM referrals WHERE tenant_id = \$1 AND status = \$2 ORDER BY created_at DESC OFFSET \$3 ROWS FETCH NEXT \$4 ROWS ONLY`).
		WithArgs(tenantID.String(), "ACCEPTED", 0, 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), tenantID.String(), "ABCD2345", uuid.NewString(), uuid.NewString(), "Bruno Lima", "b@x.com", "ACCEPTED", now, now))

	status := referralstatus.Accepted
	got, err := store.Query(context.Background(), tenancy.ForTenant(tenantID), referralbus.QueryFilter{Status: &status}, referralbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "ABCD2345", got[0].Code)
	assert.Equal(t, referralstatus.Accepted, got[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryByCodeIsScoped(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	tenantID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM referrals WHERE tenant_id = \$1 AND code = \$2`).
		WithArgs(tenantID.String(), "ABCD2345").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByCode(context.Background(), tenancy.ForTenant(tenantID), "ABCD2345")
	assert.ErrorIs(t, err, referralbus.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateDuplicateCode(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	ref := referralbus.Referral{
		ID:             uuid.New(),
		TenantID:       uuid.New(),
		Code:           "ABCD2345",
		ReferrerID:     uuid.New(),
		ProfessionalID: uuid.New(),
		ReferredName:   name.MustParse("Bruno Lima"),
		ReferredEmail:  mail.Address{Address: "b@x.com"},
		Status:         referralstatus.Pending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	mock.ExpectExec(`INSERT INTO referrals`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_referral_code"})

	err := store.Create(context.Background(), tenancy.ForTenant(ref.TenantID), ref)
	assert.ErrorIs(t, err, referralbus.ErrUniqueCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateCodeTaken(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	ref := referralbus.Referral{
		ID:             uuid.New(),
		TenantID:       uuid.New(),
		Code:           "ABCD2345",
		ReferrerID:     uuid.New(),
		ProfessionalID: uuid.New(),
		ReferredName:   name.MustParse("Bruno Lima"),
		ReferredEmail:  mail.Address{Address: "b@x.com"},
		Status:         referralstatus.Pending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	mock.ExpectExec(`INSERT INTO referrals (.+) ON CONFLICT ON CONSTRAINT uq_referral_code DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Create(context.Background(), tenancy.ForTenant(ref.TenantID), ref)
	assert.ErrorIs(t, err, referralbus.ErrUniqueCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_NotReadyNeverQueries(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	_, err := store.QueryByCode(context.Background(), tenancy.Filter{}, "ABCD2345")
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
	assert.NoError(t, mock.ExpectationsWereMet())
}
