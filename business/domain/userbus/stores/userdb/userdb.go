// Package userdb contains user related CRUD functionality.
package userdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const selectUser = `
	SELECT
		user_id, tenant_id, name, email, role, password_hash, phone, enabled, created_at, updated_at
	FROM
		users`

// Store manages the set of APIs for user database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
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

// Create inserts a new user into the database.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, usr userbus.User) error {
	if err := f.CheckOwner(usr.TenantID); err != nil {
		return err
	}

	const q = `
	INSERT INTO users
		(user_id, tenant_id, name, email, role, password_hash, phone, enabled, created_at, updated_at)
	VALUES
		(:user_id, :tenant_id, :name, :email, :role, :password_hash, :phone, :enabled, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBUser(usr)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Update replaces a user document in the database.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, usr userbus.User) error {
	if err := f.CheckOwner(usr.TenantID); err != nil {
		return err
	}

	const q = `
	UPDATE
		users
	SET
		name = :name,
		email = :email,
		role = :role,
		password_hash = :password_hash,
		phone = :phone,
		enabled = :enabled,
		updated_at = :updated_at
	WHERE
		user_id = :user_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBUser(usr)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Delete removes a user from the database.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, usr userbus.User) error {
	if err := f.CheckOwner(usr.TenantID); err != nil {
		return err
	}

	const q = `
	DELETE FROM
		users
	WHERE
		user_id = :user_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBUser(usr)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Query retrieves a list of existing users from the database.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectUser)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return nil, err
	}

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbUsrs []userDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbUsrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusUsers(dbUsrs)
}

// Count returns the total number of users in the DB.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter userbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		users`

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

// QueryByID gets the specified user from the database.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, userID uuid.UUID) (userbus.User, error) {
	return s.queryOne(ctx, f, userbus.QueryFilter{ID: &userID})
}

// QueryByEmail gets the specified user from the database by email.
func (s *Store) QueryByEmail(ctx context.Context, f tenancy.Filter, email mail.Address) (userbus.User, error) {
	return s.queryOne(ctx, f, userbus.QueryFilter{Email: &email})
}

func (s *Store) queryOne(ctx context.Context, f tenancy.Filter, filter userbus.QueryFilter) (userbus.User, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(selectUser)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return userbus.User{}, err
	}

	var dbUsr userDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &dbUsr); err != nil {
		return userbus.User{}, fmt.Errorf("db: %w", mapError(err))
	}

	return toBusUser(dbUsr)
}

func mapError(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	switch {
	case errors.Is(err, sqldb.ErrDBNotFound):
		return userbus.ErrNotFound
	case errors.As(err, &dupErr) && dupErr.Column == "uq_user_email":
		return userbus.ErrUniqueEmail
	}

	return err
}
