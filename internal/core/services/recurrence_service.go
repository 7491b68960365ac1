package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
)

type recurrenceService struct {
	BaseService
	feeRepo        portsrepo.FeeRepositoryFacade
	recurrenceRepo portsrepo.FeeRecurrenceRepository
}

// NewRecurrenceService creates the recurrence chain service. Callers that
// may mint must run it inside a transaction.
func NewRecurrenceService(feeRepo portsrepo.FeeRepositoryFacade, recurrenceRepo portsrepo.FeeRecurrenceRepository, base BaseService) portssvc.RecurrenceChainSvc {
	return &recurrenceService{
		BaseService:    base,
		feeRepo:        feeRepo,
		recurrenceRepo: recurrenceRepo,
	}
}

var _ portssvc.RecurrenceChainSvc = (*recurrenceService)(nil)

func (s *recurrenceService) FindNext(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error) {
	link, err := s.recurrenceRepo.FindNextRecurrence(ctx, feeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next recurrence of fee %d: %w", feeID, err)
	}
	return link, nil
}

func (s *recurrenceService) FindOrCreateNextPeriod(ctx context.Context, fee domain.Fee) (*domain.NextPeriod, error) {
	next, err := s.FindNext(ctx, fee.ID)
	if err != nil {
		return nil, err
	}
	if next != nil {
		nextFee, err := s.feeRepo.FindFeeByID(ctx, next.FeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load next fee %d in chain of %d: %w", next.FeeID, fee.ID, err)
		}
		return &domain.NextPeriod{Fee: *nextFee, DueDate: next.DueDate}, nil
	}

	// only fees that are part of a chain (seed or minted) advance
	if _, err := s.recurrenceRepo.FindRecurrenceByFeeID(ctx, fee.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recurrence of fee %d: %w", fee.ID, err)
	}

	nextFee, err := fee.NextPeriod(s.now())
	if err != nil {
		s.LogWarn(ctx, "Fee is in a recurrence chain but has no recurrence type",
			slog.Int64("fee_id", fee.ID))
		return nil, nil
	}
	if err := s.feeRepo.SaveFee(ctx, &nextFee); err != nil {
		return nil, fmt.Errorf("failed to mint next period of fee %d: %w", fee.ID, err)
	}
	link := domain.FeeRecurrence{
		FeeID:         nextFee.ID,
		PreviousFeeID: fee.ID,
		DueDate:       nextFee.DueDate,
	}
	// a concurrent payer minting the same period fails here and the
	// transaction is replayed, finding this link instead
	if err := s.recurrenceRepo.SaveRecurrence(ctx, &link); err != nil {
		return nil, fmt.Errorf("failed to link fee %d after %d: %w", nextFee.ID, fee.ID, err)
	}

	s.LogInfo(ctx, "Minted next fee period",
		slog.Int64("fee_id", fee.ID),
		slog.Int64("next_fee_id", nextFee.ID),
		slog.Time("due_date", nextFee.DueDate))
	return &domain.NextPeriod{Fee: nextFee, DueDate: nextFee.DueDate, Minted: true}, nil
}
