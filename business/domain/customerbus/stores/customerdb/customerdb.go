// Package customerdb contains customer related CRUD functionality. Every
// statement is restricted to the tenant of the filter it receives.
package customerdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/tenancy"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const selectCustomer = `
	SELECT
		customer_id, tenant_id, name, email, phone, vehicle_make, vehicle_model, vehicle_year, created_at, updated_at
	FROM
		customers`

// Store manages the set of APIs for customer database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (customerbus.Storer, error) {
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

// Create inserts a new customer into the database.
func (s *Store) Create(ctx context.Context, f tenancy.Filter, cus customerbus.Customer) error {
	if err := f.CheckOwner(cus.TenantID); err != nil {
		return err
	}

	const q = `
	INSERT INTO customers
		(customer_id, tenant_id, name, email, phone, vehicle_make, vehicle_model, vehicle_year, created_at, updated_at)
	VALUES
		(:customer_id, :tenant_id, :name, :email, :phone, :vehicle_make, :vehicle_model, :vehicle_year, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBCustomer(cus)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Update replaces a customer document in the database. The row must belong
// to the tenant of the customer, which the filter has already vouched for.
func (s *Store) Update(ctx context.Context, f tenancy.Filter, cus customerbus.Customer) error {
	if err := f.CheckOwner(cus.TenantID); err != nil {
		return err
	}

	const q = `
	UPDATE
		customers
	SET
		name = :name,
		email = :email,
		phone = :phone,
		vehicle_make = :vehicle_make,
		vehicle_model = :vehicle_model,
		vehicle_year = :vehicle_year,
		updated_at = :updated_at
	WHERE
		customer_id = :customer_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBCustomer(cus)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Delete removes a customer from the database.
func (s *Store) Delete(ctx context.Context, f tenancy.Filter, cus customerbus.Customer) error {
	if err := f.CheckOwner(cus.TenantID); err != nil {
		return err
	}

	const q = `
	DELETE FROM
		customers
	WHERE
		customer_id = :customer_id AND tenant_id = :tenant_id`

	if _, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBCustomer(cus)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapError(err))
	}

	return nil
}

// Query retrieves a list of existing customers from the database.
func (s *Store) Query(ctx context.Context, f tenancy.Filter, filter customerbus.QueryFilter, orderBy order.By, page page.Page) ([]customerbus.Customer, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	buf := bytes.NewBufferString(selectCustomer)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return nil, err
	}

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbCuss []customerDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbCuss); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusCustomers(dbCuss)
}

// Count returns the total number of customers in the DB.
func (s *Store) Count(ctx context.Context, f tenancy.Filter, filter customerbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		customers`

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

// QueryByID gets the specified customer from the database.
func (s *Store) QueryByID(ctx context.Context, f tenancy.Filter, customerID uuid.UUID) (customerbus.Customer, error) {
	return s.queryOne(ctx, f, customerbus.QueryFilter{ID: &customerID})
}

// QueryByEmail gets the customer with the specified email from the database.
func (s *Store) QueryByEmail(ctx context.Context, f tenancy.Filter, email mail.Address) (customerbus.Customer, error) {
	return s.queryOne(ctx, f, customerbus.QueryFilter{Email: &email})
}

func (s *Store) queryOne(ctx context.Context, f tenancy.Filter, filter customerbus.QueryFilter) (customerbus.Customer, error) {
	data := map[string]any{}

	buf := bytes.NewBufferString(selectCustomer)
	if err := applyFilter(f, filter, data, buf); err != nil {
		return customerbus.Customer{}, err
	}

	var dbCus customerDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &dbCus); err != nil {
		return customerbus.Customer{}, fmt.Errorf("db: %w", mapError(err))
	}

	return toBusCustomer(dbCus)
}

func mapError(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	switch {
	case errors.Is(err, sqldb.ErrDBNotFound):
		return customerbus.ErrNotFound
	case errors.As(err, &dupErr) && dupErr.Column == "uq_customer_tenant_email":
		return customerbus.ErrUniqueEmail
	}

	return err
}
