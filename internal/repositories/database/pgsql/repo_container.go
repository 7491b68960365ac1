package pgsql

import (
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto the shared pool.
// maxTxRetries bounds how often a conflicting unit of work is replayed.
func NewRepositoryProvider(dbPool *pgxpool.Pool, maxTxRetries int) portsrepo.RepositoryProvider {
	feeRepo := newPgxFeeRepository(dbPool)
	assignmentRepo := newPgxAssignmentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxRunner:             newPgxTxRunner(dbPool, maxTxRetries),
		UserRepo:             newPgxUserRepository(dbPool),
		RoomRepo:             newPgxRoomRepository(dbPool),
		FeeRepo:              feeRepo,
		RecurrenceRepo:       feeRepo,
		AssignmentRepo:       assignmentRepo,
		TransactionRepo:      assignmentRepo,
		TransactionLogRepo:   assignmentRepo,
		NotificationRepo:     newPgxNotificationRepository(dbPool),
		FamilyRepo:           newPgxFamilyRepository(dbPool),
		PasswordRecoveryRepo: newPgxPasswordRecoveryRepository(dbPool),
	}
}
