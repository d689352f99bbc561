package professionaldb_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus/stores/professionaldb"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/business/types/specialty"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*professionaldb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })

	return professionaldb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func TestStore_Query(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	tenantID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM professionals WHERE tenant_id = \$1 AND specialty = \$2 ORDER BY name ASC`).
		WithArgs(tenantID.String(), "TIRES", 0, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"professional_id", "tenant_id", "name", "business_name", "email", "phone", "specialty", "enabled", "created_at", "updated_at",
		}).AddRow(uuid.NewString(), tenantID.String(), "Carlos Lima", "Pneus Lima", "c@x.com", "+55 11 99999-0000", "TIRES", true, now, now))

	spc := specialty.Tires
	got, err := store.Query(context.Background(), tenancy.ForTenant(tenantID), professionalbus.QueryFilter{Specialty: &spc}, professionalbus.DefaultOrderBy, page.MustParse("1", "10"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, specialty.Tires, got[0].Specialty)
	assert.Equal(t, "Pneus Lima", got[0].BusinessName)
	assert.Equal(t, "+55 11 99999-0000", got[0].Phone.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_NotReady(t *testing.T) {
	t.Parallel()

	store, mock := newStore(t)

	_, err := store.Query(context.Background(), tenancy.Filter{}, professionalbus.QueryFilter{}, professionalbus.DefaultOrderBy, page.MustParse("1", "10"))
	assert.ErrorIs(t, err, tenancy.ErrContextNotReady)
	assert.NoError(t, mock.ExpectationsWereMet())
}
