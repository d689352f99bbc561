// Package referraldb contains referral related CRUD functionality.
package referraldb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const selectReferral = `
	SELECT
		referral_id, tenant_id, code, referrer_id, professional_id, referred_name, referred_email, status, created_at, updated_at
	FROM
		referrals`

// Store manages the set of APIs for referral database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (referralbus.Storer, error) {
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

// Create inserts a new referral into the database. A code already taken
// inserts nothing and is reported as ErrUniqueCode, so the statement never
// aborts an enclosing transaction and the caller can retry with a new code.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, ref referralbus.Referral) error {
	if err := f.CheckOwner(ref.TenantID); err != nil {
		return err
	}

	const q = `
	INSERT INTO referrals
		(referral_id, tenant_id, code, referrer_id, professional_id, referred_name, referred_email, status, created_at, updated_at)
	VALUES
		(:referral_id, :tenant_id, :code, :referrer_id, :professional_id, :referred_name, :referred_email, :status, :created_at, :updated_at)
	ON CONFLICT ON CONSTRAINT uq_referral_code DO NOTHING`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBReferral(ref)); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return fmt.Errorf("namedexeccontext: code[%s]: %w", ref.Code, referralbus.ErrUniqueCode)
		}
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Update replaces the mutable columns of a referral.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, ref referralbus.Referral) error {
	if err := f.CheckOwner(ref.TenantID); err != nil {
		return err
	}

	const q = `
	UPDATE
		referrals
	SET
		referred_name = :referred_name,
		referred_email = :referred_email,
		status = :status,
		updated_at = :updated_at
	WHERE
		referral_id = :referral_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBReferral(ref)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Delete removes a referral from the database.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, ref referralbus.Referral) error {
	if err := f.CheckOwner(ref.TenantID); err != nil {
		return err
	}

	const q = `
	DELETE FROM
		referrals
	WHERE
		referral_id = :referral_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBReferral(ref)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Query retrieves a list of existing referrals from the database.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter referralbus.QueryFilter, orderBy order.By, page page.Page) ([]referralbus.Referral, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectReferral)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return nil, err
	}

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbRefs []referralDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbRefs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusReferrals(dbRefs)
}

// Count returns the total number of referrals in the DB.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter referralbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		referrals`

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

// QueryByID gets the specified referral from the database.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, referralID uuid.UUID) (referralbus.Referral, error) {
	return s.queryOne(ctx, f, referralbus.QueryFilter{ID: &referralID})
}

// QueryByCode gets the referral with the specified code from the database.
func (s *Store) QueryByCode(ctx context.Context, f tenancy.Filter, code string) (referralbus.Referral, error) {
	return s.queryOne(ctx, f, referralbus.QueryFilter{Code: &code})
}

func (s *Store) queryOne(ctx context.Context, f tenancy.Filter, filter referralbus.QueryFilter) (referralbus.Referral, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(selectReferral)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return referralbus.Referral{}, err
	}

	var dbRef referralDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &dbRef); err != nil {
		return referralbus.Referral{}, fmt.Errorf("db: %w", mapError(err))
	}

	return toBusReferral(dbRef)
}

func mapError(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	switch {
	case errors.Is(err, sqldb.ErrDBNotFound):
		return referralbus.ErrNotFound
	case errors.As(err, &dupErr) && dupErr.Column == "uq_referral_code":
		return referralbus.ErrUniqueCode
	}

	return err
}
