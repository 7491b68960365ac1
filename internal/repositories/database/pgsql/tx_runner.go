package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// constraints whose violation means a concurrent request won a race we can
// simply replay against.
var retryableConstraints = map[string]bool{
	"fee_recurrence_fee_id_key":    true,
	"fee_recurrence_next_link_key": true,
}

// PgxTxRunner runs callbacks in serializable transactions and replays them on conflict.
type PgxTxRunner struct {
	BaseRepository
	maxRetries int
	// attempt runs fn in one fresh transaction.
	attempt func(ctx context.Context, fn func(ctx context.Context) error) error
}

func newPgxTxRunner(pool *pgxpool.Pool, maxRetries int) *PgxTxRunner {
	if maxRetries < 0 {
		maxRetries = 0
	}
	r := &PgxTxRunner{BaseRepository: BaseRepository{Pool: pool}, maxRetries: maxRetries}
	r.attempt = r.runOnce
	return r
}

var _ portsrepo.TxRunner = (*PgxTxRunner)(nil)

// RunInTx implements portsrepo.TxRunner. Nested calls join the outer transaction.
func (r *PgxTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	var err error
	for i := 0; i <= r.maxRetries; i++ {
		err = r.attempt(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Retrying transaction after conflict",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	return fmt.Errorf("transaction still conflicting after %d attempts: %w", r.maxRetries+1, err)
}

func (r *PgxTxRunner) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after commit

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	case pgUniqueViolation:
		return retryableConstraints[pgErr.ConstraintName]
	}
	return false
}
