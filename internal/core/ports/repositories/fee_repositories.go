package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
)

// FeeReader defines read operations for fees
type FeeReader interface {
	FindFeeByID(ctx context.Context, feeID int64) (*domain.Fee, error)

	// FindFees lists every fee ordered by due date ascending.
	FindFees(ctx context.Context) ([]domain.Fee, error)

	// FindFeeCollection returns how many rooms are assigned, how many paid and
	// the sum of recorded transactions for the fee.
	FindFeeCollection(ctx context.Context, feeID int64) (assigned int, paid int, collected int64, err error)
}

// FeeWriter defines write operations for fees
type FeeWriter interface {
	// SaveFee inserts a fee and sets its ID.
	SaveFee(ctx context.Context, fee *domain.Fee) error
	UpdateFee(ctx context.Context, fee domain.Fee) error
	DeleteFee(ctx context.Context, feeID int64) error
}

// FeeRepositoryFacade combines all fee-related repository interfaces
type FeeRepositoryFacade interface {
	FeeReader
	FeeWriter
}

// FeeRecurrenceRepository stores the backward-linked chain of recurring fee instances.
type FeeRecurrenceRepository interface {
	// FindRecurrenceByFeeID returns the link whose fee_id is feeID.
	FindRecurrenceByFeeID(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error)

	// FindNextRecurrence returns the link pointing back at feeID, excluding the
	// self-referential seed.
	FindNextRecurrence(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error)

	// SaveRecurrence inserts a link and sets its ID. A second link for the same
	// fee_id fails with apperrors.ErrDuplicate.
	SaveRecurrence(ctx context.Context, link *domain.FeeRecurrence) error

	// UpdateRecurrenceDueDate changes the due date on the link of feeID.
	UpdateRecurrenceDueDate(ctx context.Context, feeID int64, dueDate time.Time) error

	// DeleteRecurrence removes the chain link of feeID. Successors keep theirs.
	DeleteRecurrence(ctx context.Context, feeID int64) error
}

// AssignmentReader defines read operations for fee-room assignments
type AssignmentReader interface {
	FindAssignmentByID(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error)

	// FindAssignmentForUpdate reads and row-locks the assignment for the
	// remainder of the current transaction.
	FindAssignmentForUpdate(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error)

	FindAssignmentByFeeAndRoom(ctx context.Context, feeID int64, roomNumber int) (*domain.FeeAssignment, error)
	FindAssignmentsByFee(ctx context.Context, feeID int64) ([]domain.FeeAssignment, error)

	// FindHouseholdFees lists the room's assignments joined with fee data, newest due date first.
	FindHouseholdFees(ctx context.Context, roomNumber int) ([]domain.HouseholdFee, error)
}

// AssignmentWriter defines write operations for fee-room assignments
type AssignmentWriter interface {
	// SaveAssignment inserts the assignment unless (room, fee) already exists.
	// It reports whether a row was created and sets the ID when it was.
	SaveAssignment(ctx context.Context, assignment *domain.FeeAssignment) (bool, error)

	// MarkAssignmentPaid flips is_paid and records the payment instant. It
	// fails with apperrors.ErrAlreadySettled if the row was already paid.
	MarkAssignmentPaid(ctx context.Context, assignmentID int64, paidAt time.Time) error
}

// AssignmentRepositoryFacade combines all assignment-related repository interfaces
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}

// TransactionRepository appends settlement transactions.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error
	FindTransactionsByAssignment(ctx context.Context, assignmentID int64) ([]domain.Transaction, error)
}

// TransactionLogRepository records raw gateway notifications.
type TransactionLogRepository interface {
	// SaveTransactionLog stores the log and reports false when the gateway id was already recorded.
	SaveTransactionLog(ctx context.Context, log domain.TransactionLog) (bool, error)
}
