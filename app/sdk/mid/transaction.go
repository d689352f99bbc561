package mid

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/sdk/web"
	"github.com/jcpaschoal/autonet/foundation/logger"
)

// saver is implemented by a unit of work that reports the rows it wrote.
type saver interface {
	SaveChanges() (int64, error)
}

// BeginCommitRollback starts a transaction for the domain call. The writes of
// the handler are persisted together when it succeeds and rolled back when
// it fails.
func BeginCommitRollback(log *logger.Logger, bgn sqldb.Beginner) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			hasCommitted := false

			log.Info(ctx, "BEGIN TRANSACTION")
			tx, err := bgn.Begin()
			if err != nil {
				return errs.Errorf(errs.Internal, "BEGIN TRANSACTION: %s", err)
			}

			defer func() {
				if !hasCommitted {
					log.Info(ctx, "ROLLBACK TRANSACTION")
				}

				if err := tx.Rollback(); err != nil {
					if errors.Is(err, sql.ErrTxDone) {
						return
					}
					log.Info(ctx, "ROLLBACK TRANSACTION", "ERROR", err)
				}
			}()

			ctx = setTran(ctx, tx)

			resp := next(ctx, r)

			if isError(resp) != nil {
				return resp
			}

			switch uow := tx.(type) {
			case saver:
				rows, err := uow.SaveChanges()
				if err != nil {
					return errs.Errorf(errs.Internal, "COMMIT TRANSACTION: %s", err)
				}
				log.Info(ctx, "COMMIT TRANSACTION", "rows", rows)

			default:
				if err := tx.Commit(); err != nil {
					return errs.Errorf(errs.Internal, "COMMIT TRANSACTION: %s", err)
				}
				log.Info(ctx, "COMMIT TRANSACTION")
			}

			hasCommitted = true

			return resp
		}

		return h
	}

	return m
}
