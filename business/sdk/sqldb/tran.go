package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
)

// Beginner represents a value that can begin a transaction.
type Beginner interface {
	Begin() (CommitRollbacker, error)
}

// CommitRollbacker represents a value that can commit or rollback a transaction.
type CommitRollbacker interface {
	Commit() error
	Rollback() error
}

// =============================================================================

// DBBeginner implements the Beginner interface.
type DBBeginner struct {
	sqlxDB *sqlx.DB
}

// NewBeginner constructs a value that implements the Beginner interface.
func NewBeginner(sqlxDB *sqlx.DB) *DBBeginner {
	return &DBBeginner{
		sqlxDB: sqlxDB,
	}
}

// Begin implements the Beginner interface and returns a concrete value that
// implements the CommitRollbacker interface.
func (db *DBBeginner) Begin() (CommitRollbacker, error) {
	tx, err := db.sqlxDB.Beginx()
	if err != nil {
		return nil, err
	}

	return newUnitOfWork(tx), nil
}

// GetExtContext is a helper function that extracts the sqlx value
// from the domain transactor interface for transactional use.
func GetExtContext(tx CommitRollbacker) (sqlx.ExtContext, error) {
	switch v := tx.(type) {
	case *UnitOfWork:
		return v.ext, nil
	case *sqlx.Tx:
		return v, nil
	}

	return nil, errors.New("Extractor not found")
}

// =============================================================================

// UnitOfWork groups the writes of one request into a single transaction and
// counts the rows those writes affected.
type UnitOfWork struct {
	tx       *sqlx.Tx
	ext      *countingTx
	affected atomic.Int64
}

func newUnitOfWork(tx *sqlx.Tx) *UnitOfWork {
	uow := UnitOfWork{
		tx: tx,
	}
	uow.ext = &countingTx{Tx: tx, uow: &uow}

	return &uow
}

// Commit implements the CommitRollbacker interface.
func (u *UnitOfWork) Commit() error {
	return u.tx.Commit()
}

// Rollback implements the CommitRollbacker interface.
func (u *UnitOfWork) Rollback() error {
	return u.tx.Rollback()
}

// Affected returns the number of rows written so far.
func (u *UnitOfWork) Affected() int64 {
	return u.affected.Load()
}

// SaveChanges commits the transaction and returns the number of rows the
// unit of work affected.
func (u *UnitOfWork) SaveChanges() (int64, error) {
	if err := u.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return 0, fmt.Errorf("save changes: %w", err)
		}
		return 0, fmt.Errorf("commit: %w", err)
	}

	return u.Affected(), nil
}

// countingTx is the sqlx.ExtContext handed to stores inside a unit of work.
type countingTx struct {
	*sqlx.Tx
	uow *UnitOfWork
}

// ExecContext executes the statement and records the affected rows.
func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := c.Tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if n, err := res.RowsAffected(); err == nil {
		c.uow.affected.Add(n)
	}

	return res, nil
}
