package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
)

// EventSink receives product analytics events.
type EventSink interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

const (
	eventFeeSettled = "fee_settled"
	// gatewayDistinctID attributes webhook settlements in analytics.
	gatewayDistinctID = "payment-gateway"
)

type settlementService struct {
	BaseService
	txRunner       portsrepo.TxRunner
	roomRepo       portsrepo.RoomRepository
	feeRepo        portsrepo.FeeReader
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	txnRepo        portsrepo.TransactionRepository
	txnLogRepo     portsrepo.TransactionLogRepository
	chain          portssvc.RecurrenceChainSvc
	extractor      *domain.PaymentCodeExtractor
	events         EventSink
}

// SettlementOption is a functional option for configuring the settlement service
type SettlementOption func(*settlementService)

// WithPaymentCodePrefix sets the prefix of codes embedded in transfer content.
func WithPaymentCodePrefix(prefix string) SettlementOption {
	return func(s *settlementService) {
		s.extractor = domain.NewPaymentCodeExtractor(prefix)
	}
}

// WithEventSink reports every settlement as a fee_settled event.
func WithEventSink(sink EventSink) SettlementOption {
	return func(s *settlementService) {
		s.events = sink
	}
}

// WithSettlementClock overrides the clock used for manual payments.
func WithSettlementClock(now func() time.Time) SettlementOption {
	return func(s *settlementService) {
		s.Now = now
	}
}

// NewSettlementService creates the payment settlement service.
func NewSettlementService(repos portsrepo.RepositoryProvider, chain portssvc.RecurrenceChainSvc, options ...SettlementOption) portssvc.SettlementSvc {
	svc := &settlementService{
		txRunner:       repos.TxRunner,
		roomRepo:       repos.RoomRepo,
		feeRepo:        repos.FeeRepo,
		assignmentRepo: repos.AssignmentRepo,
		txnRepo:        repos.TransactionRepo,
		txnLogRepo:     repos.TransactionLogRepo,
		chain:          chain,
		extractor:      domain.NewPaymentCodeExtractor(domain.DefaultPaymentCodePrefix),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

func (s *settlementService) PayFee(ctx context.Context, userID int64, feeID int64) (*domain.SettlementResult, error) {
	var result *domain.SettlementResult
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		result = nil

		room, err := s.roomRepo.FindRoomByTenant(ctx, userID)
		if err != nil {
			return fmt.Errorf("room of user %d: %w", userID, err)
		}
		found, err := s.assignmentRepo.FindAssignmentByFeeAndRoom(ctx, feeID, room.RoomNumber)
		if err != nil {
			return fmt.Errorf("fee %d for room %d: %w", feeID, room.RoomNumber, err)
		}
		assignment, err := s.assignmentRepo.FindAssignmentForUpdate(ctx, found.ID)
		if err != nil {
			return err
		}
		if assignment.IsPaid {
			result = &domain.SettlementResult{Assignment: *assignment, AlreadyPaid: true, Outcome: domain.AdvanceNone}
			return nil
		}

		fee, err := s.feeRepo.FindFeeByID(ctx, assignment.FeeID)
		if err != nil {
			return fmt.Errorf("fee %d of assignment %d: %w", assignment.FeeID, assignment.ID, err)
		}
		result, err = s.settle(ctx, *assignment, *fee, fee.Amount, s.now())
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Manual fee payment failed",
				slog.Int64("user_id", userID),
				slog.Int64("fee_id", feeID))
		}
		return nil, err
	}

	if result.AlreadyPaid {
		s.LogInfo(ctx, "Fee already paid, nothing to do",
			slog.Int64("assignment_id", result.Assignment.ID))
		return result, nil
	}
	s.report(strconv.FormatInt(userID, 10), domain.PaymentSourceManual, result)
	return result, nil
}

func (s *settlementService) SettleTransfer(ctx context.Context, log domain.TransactionLog) (*domain.SettlementResult, error) {
	inserted, err := s.txnLogRepo.SaveTransactionLog(ctx, log)
	if err != nil {
		s.LogError(ctx, err, "Failed to record transaction log", slog.Int64("transfer_id", log.ID))
		return nil, err
	}
	if !inserted {
		s.LogWarn(ctx, "Transfer notification redelivered", slog.Int64("transfer_id", log.ID))
	}

	assignmentID, err := s.extractor.AssignmentID(log.Content)
	if err != nil {
		s.LogError(ctx, err, "Transfer carries no payment code", slog.Int64("transfer_id", log.ID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrReferenceCode, err)
	}
	payment := domain.TransferPayment{
		AssignmentID:  assignmentID,
		Amount:        log.TransferAmount,
		TransferredAt: log.TransactionDate,
	}

	var result *domain.SettlementResult
	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		assignment, err := s.assignmentRepo.FindAssignmentForUpdate(ctx, payment.AssignmentID)
		if err != nil {
			return fmt.Errorf("assignment %d: %w", payment.AssignmentID, err)
		}
		if assignment.IsPaid {
			return fmt.Errorf("assignment %d: %w", assignment.ID, apperrors.ErrAlreadySettled)
		}
		fee, err := s.feeRepo.FindFeeByID(ctx, assignment.FeeID)
		if err != nil {
			return fmt.Errorf("fee %d of assignment %d: %w", assignment.FeeID, assignment.ID, err)
		}
		if payment.Amount != fee.Amount {
			return fmt.Errorf("%w: expected %d, got %d", apperrors.ErrAmountMismatch, fee.Amount, payment.Amount)
		}
		result, err = s.settle(ctx, *assignment, *fee, payment.Amount, payment.TransferredAt)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Transfer settlement failed",
			slog.Int64("transfer_id", log.ID),
			slog.Int64("assignment_id", payment.AssignmentID))
		return nil, err
	}

	s.report(gatewayDistinctID, domain.PaymentSourceWebhook, result)
	return result, nil
}

// settle marks the assignment paid, appends the transaction and advances the
// recurrence chain. It must run inside the caller's transaction.
func (s *settlementService) settle(ctx context.Context, assignment domain.FeeAssignment, fee domain.Fee, amount int64, paidAt time.Time) (*domain.SettlementResult, error) {
	if err := s.assignmentRepo.MarkAssignmentPaid(ctx, assignment.ID, paidAt); err != nil {
		return nil, err
	}
	assignment.MarkPaid(paidAt)

	txn := domain.Transaction{Amount: amount, CreatedAt: paidAt, AssignmentID: assignment.ID}
	if err := s.txnRepo.SaveTransaction(ctx, &txn); err != nil {
		return nil, err
	}

	result := &domain.SettlementResult{Assignment: assignment, Transaction: &txn, Outcome: domain.AdvanceNone}

	next, err := s.chain.FindOrCreateNextPeriod(ctx, fee)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return result, nil
	}
	result.NextFee = &next.Fee
	result.Outcome = domain.AdvanceLinked
	if next.Minted {
		result.Outcome = domain.AdvanceMinted
	}

	if assignment.RoomNumber == 0 {
		// the room was removed after the fee was assigned
		return result, nil
	}
	nextAssignment := domain.FeeAssignment{
		RoomNumber: assignment.RoomNumber,
		FeeID:      next.Fee.ID,
		DueDate:    next.DueDate,
	}
	created, err := s.assignmentRepo.SaveAssignment(ctx, &nextAssignment)
	if err != nil {
		return nil, err
	}
	if created {
		result.NextAssignment = &nextAssignment
	}
	return result, nil
}

func (s *settlementService) report(distinctID string, source domain.PaymentSource, result *domain.SettlementResult) {
	if s.events == nil || result == nil {
		return
	}
	props := map[string]any{
		"assignment_id": result.Assignment.ID,
		"fee_id":        result.Assignment.FeeID,
		"room_number":   result.Assignment.RoomNumber,
		"source":        string(source),
		"outcome":       string(result.Outcome),
	}
	if result.Transaction != nil {
		props["amount"] = result.Transaction.Amount
	}
	if result.NextFee != nil {
		props["next_fee_id"] = result.NextFee.ID
	}
	s.events.Enqueue(distinctID, eventFeeSettled, props)
}

func (s *settlementService) GetPaymentStatus(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error) {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load assignment", slog.Int64("assignment_id", assignmentID))
		}
		return nil, err
	}
	return assignment, nil
}
