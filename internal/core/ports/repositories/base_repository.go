package repositories

import (
	"context"
)

// TxRunner runs a unit of work atomically. Repositories called with the
// context passed to fn take part in the same database transaction.
type TxRunner interface {
	// RunInTx executes fn in a serializable transaction, retrying the whole
	// callback when the database reports a serialization conflict. fn must be
	// safe to run more than once.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
