// Package professionaldb contains professional related CRUD functionality.
package professionaldb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const selectProfessional = `
	SELECT
		professional_id, tenant_id, name, business_name, email, phone, specialty, enabled, created_at, updated_at
	FROM
		professionals`

// Store manages the set of APIs for professional database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (professionalbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new professional into the database.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, prf professionalbus.Professional) error {
	if err := f.CheckOwner(prf.TenantID); err != nil {
		return err
	}

	const q = `
	INSERT INTO professionals
		(professional_id, tenant_id, name, business_name, email, phone, specialty, enabled, created_at, updated_at)
	VALUES
		(:professional_id, :tenant_id, :name, :business_name, :email, :phone, :specialty, :enabled, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBProfessional(prf)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Update replaces a professional document in the database.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, prf professionalbus.Professional) error {
	if err := f.CheckOwner(prf.TenantID); err != nil {
		return err
	}

	const q = `
	UPDATE
		professionals
	SET
		name = :name,
		business_name = :business_name,
		email = :email,
		phone = :phone,
		specialty = :specialty,
		enabled = :enabled,
		updated_at = :updated_at
	WHERE
		professional_id = :professional_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBProfessional(prf)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Delete removes a professional from the database.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, prf professionalbus.Professional) error {
	if err := f.CheckOwner(prf.TenantID); err != nil {
		return err
	}

	const q = `
	DELETE FROM
		professionals
	WHERE
		professional_id = :professional_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBProfessional(prf)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Query retrieves a list of existing professionals from the database.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter professionalbus.QueryFilter, orderBy order.By, page page.Page) ([]professionalbus.Professional, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectProfessional)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return nil, err
	}

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbPrfs []professionalDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbPrfs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusProfessionals(dbPrfs)
}

// Count returns the total number of professionals in the DB.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter professionalbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		professionals`

	buf := bytes.NewBufferString(q)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return 0, err
	}

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}

// QueryByID gets the specified professional from the database.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, professionalID uuid.UUID) (professionalbus.Professional, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(selectProfessional)
	if err := applyFilter(f, professionalbus.QueryFilter{ID: &professionalID}, data, buf); err != nil {
		return professionalbus.Professional{}, err
	}

	var dbPrf professionalDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &dbPrf); err != nil {
		return professionalbus.Professional{}, fmt.Errorf("db: %w", mapError(err))
	}

	return toBusProfessional(dbPrf)
}

func mapError(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	switch {
	case errors.Is(err, sqldb.ErrDBNotFound):
		return professionalbus.ErrNotFound
	case errors.As(err, &dupErr) && dupErr.Column == "uq_professional_tenant_email":
		return professionalbus.ErrUniqueEmail
	}

	return err
}
