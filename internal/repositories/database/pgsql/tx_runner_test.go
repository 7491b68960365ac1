package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgSerializationFailure}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgDeadlockDetected}, want: true},
		{name: "wrapped serialization failure", err: fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgSerializationFailure}), want: true},
		{name: "app error around serialization failure", err: apperrors.NewAppError(500, "failed to commit transaction", &pgconn.PgError{Code: pgSerializationFailure}), want: true},
		{name: "duplicate recurrence link", err: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "fee_recurrence_fee_id_key"}, want: true},
		{name: "duplicate successor", err: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "fee_recurrence_next_link_key"}, want: true},
		{name: "duplicate username", err: &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"}, want: false},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestMapWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "fee_recurrence_fee_id_key"}
	err := mapWriteError(dup, "failed to save fee recurrence")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.True(t, isRetryable(err), "driver error must stay in the chain")

	other := mapWriteError(errors.New("connection reset"), "failed to save fee")
	assert.NotErrorIs(t, other, apperrors.ErrDuplicate)
	assert.Contains(t, other.Error(), "failed to save fee")
}

// scriptedRunner returns a runner whose attempts fail with errs in order and
// succeed once errs is exhausted.
func scriptedRunner(maxRetries int, errs ...error) (*PgxTxRunner, *int) {
	calls := 0
	r := newPgxTxRunner(nil, maxRetries)
	r.attempt = func(ctx context.Context, fn func(ctx context.Context) error) error {
		calls++
		if calls <= len(errs) {
			return errs[calls-1]
		}
		return fn(ctx)
	}
	return r, &calls
}

func TestRunInTx_RetriesConflictThenSucceeds(t *testing.T) {
	conflict := &pgconn.PgError{Code: pgSerializationFailure}
	r, calls := scriptedRunner(3, conflict, conflict)

	ran := false
	err := r.RunInTx(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 3, *calls)
}

func TestRunInTx_GivesUpAfterMaxRetries(t *testing.T) {
	conflict := &pgconn.PgError{Code: pgDeadlockDetected}
	r, calls := scriptedRunner(2, conflict, conflict, conflict, conflict)

	err := r.RunInTx(context.Background(), func(ctx context.Context) error { return nil })

	require.Error(t, err)
	assert.Equal(t, 3, *calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, pgDeadlockDetected, pgErr.Code)
}

func TestRunInTx_DoesNotRetryOtherErrors(t *testing.T) {
	r, calls := scriptedRunner(5, apperrors.ErrNotFound)

	err := r.RunInTx(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 1, *calls)
}

func TestRunInTx_NegativeRetriesRunsOnce(t *testing.T) {
	conflict := &pgconn.PgError{Code: pgSerializationFailure}
	r, calls := scriptedRunner(-1, conflict)

	err := r.RunInTx(context.Background(), func(ctx context.Context) error { return nil })

	assert.Error(t, err)
	assert.Equal(t, 1, *calls)
}

// outerTx stands in for a transaction already bound to the context.
type outerTx struct {
	pgx.Tx
}

func TestRunInTx_JoinsOuterTransaction(t *testing.T) {
	r, calls := scriptedRunner(3)
	outer := &outerTx{}
	ctx := context.WithValue(context.Background(), txCtxKey{}, pgx.Tx(outer))

	var seen pgx.Tx
	err := r.RunInTx(ctx, func(ctx context.Context) error {
		seen, _ = txFromContext(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 0, *calls)
	assert.Same(t, outer, seen)
}
