package services

import (
	"context"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
)

// FeeReaderSvc defines read operations for fees
type FeeReaderSvc interface {
	ListFees(ctx context.Context) ([]domain.Fee, error)

	// GetFeeDetail returns the fee with every room assignment.
	GetFeeDetail(ctx context.Context, feeID int64) (*domain.FeeDetail, error)

	GetFeeStatistics(ctx context.Context, feeID int64) (*domain.FeeStatistics, error)
}

// FeeWriterSvc defines write operations for fees
type FeeWriterSvc interface {
	// CreateFee stores a fee; recurring fees also get the seed of their chain.
	CreateFee(ctx context.Context, req dto.CreateFeeRequest) (*domain.Fee, error)

	// UpdateFee edits a fee and keeps its recurrence link in sync.
	UpdateFee(ctx context.Context, feeID int64, req dto.UpdateFeeRequest) (*domain.Fee, error)

	DeleteFee(ctx context.Context, feeID int64) error
}

// FeeAssignmentSvc assigns fees to rooms
type FeeAssignmentSvc interface {
	// AssignFee assigns the fee to every listed room that does not already
	// hold it and notifies their tenants. It fails without side effects if
	// the fee or any room does not exist.
	AssignFee(ctx context.Context, feeID int64, roomNumbers []int, managerID int64) (*domain.AssignResult, error)
}

// FeeSvcFacade combines all fee-related service interfaces
type FeeSvcFacade interface {
	FeeReaderSvc
	FeeWriterSvc
	FeeAssignmentSvc
}

// RecurrenceChainSvc navigates the linked list of recurring fee instances.
type RecurrenceChainSvc interface {
	// FindNext returns the link to the instance following feeID, or nil.
	FindNext(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error)

	// FindOrCreateNextPeriod returns the instance following fee, minting it
	// when the chain ends at fee. It returns nil for fees outside any chain.
	FindOrCreateNextPeriod(ctx context.Context, fee domain.Fee) (*domain.NextPeriod, error)
}

// SettlementSvc records fee payments and advances recurring fees.
type SettlementSvc interface {
	// PayFee settles the caller's room assignment for feeID. Paying an
	// already paid assignment succeeds without changes.
	PayFee(ctx context.Context, userID int64, feeID int64) (*domain.SettlementResult, error)

	// SettleTransfer logs a gateway notification and settles the assignment
	// referenced by its payment code.
	SettleTransfer(ctx context.Context, log domain.TransactionLog) (*domain.SettlementResult, error)

	// GetPaymentStatus returns the assignment named by a payment code id.
	GetPaymentStatus(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error)
}
