package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/platform/mail"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
)

const noticeDateLayout = "02/01/2006"

type feeService struct {
	BaseService
	txRunner         portsrepo.TxRunner
	feeRepo          portsrepo.FeeRepositoryFacade
	recurrenceRepo   portsrepo.FeeRecurrenceRepository
	assignmentRepo   portsrepo.AssignmentRepositoryFacade
	roomRepo         portsrepo.RoomRepository
	userRepo         portsrepo.UserReader
	notificationRepo portsrepo.NotificationRepository
	mailer           mail.Mailer
	codePrefix       string
}

// FeeOption is a functional option for configuring the fee service
type FeeOption func(*feeService)

// WithFeeMailer e-mails tenants when a fee is assigned to their room.
func WithFeeMailer(m mail.Mailer) FeeOption {
	return func(s *feeService) {
		s.mailer = m
	}
}

// WithFeePaymentCodePrefix sets the prefix quoted in assignment notices.
func WithFeePaymentCodePrefix(prefix string) FeeOption {
	return func(s *feeService) {
		s.codePrefix = prefix
	}
}

// NewFeeService creates the fee management service.
func NewFeeService(repos portsrepo.RepositoryProvider, options ...FeeOption) portssvc.FeeSvcFacade {
	svc := &feeService{
		txRunner:         repos.TxRunner,
		feeRepo:          repos.FeeRepo,
		recurrenceRepo:   repos.RecurrenceRepo,
		assignmentRepo:   repos.AssignmentRepo,
		roomRepo:         repos.RoomRepo,
		userRepo:         repos.UserRepo,
		notificationRepo: repos.NotificationRepo,
		codePrefix:       domain.DefaultPaymentCodePrefix,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FeeSvcFacade = (*feeService)(nil)

// feeFromRequest validates the recurrence fields and builds the fee.
func feeFromRequest(req dto.CreateFeeRequest) (domain.Fee, error) {
	fee := domain.Fee{
		Name:        strings.TrimSpace(req.Name),
		Amount:      req.Amount,
		IsRequired:  req.IsRequired,
		DueDate:     req.DueDate,
		IsRecurring: req.IsRecurring,
	}
	if fee.Name == "" {
		return domain.Fee{}, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}
	if fee.Amount <= 0 {
		return domain.Fee{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.IsRecurring {
		return fee, nil
	}
	if req.RecurrenceType == nil {
		return domain.Fee{}, fmt.Errorf("%w: recurrence_type is required for recurring fees", apperrors.ErrValidation)
	}
	rt, err := domain.ParseRecurrenceType(*req.RecurrenceType)
	if err != nil {
		return domain.Fee{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	fee.RecurrenceType = &rt
	return fee, nil
}

func (s *feeService) CreateFee(ctx context.Context, req dto.CreateFeeRequest) (*domain.Fee, error) {
	fee, err := feeFromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		fee.ID = 0
		fee.CreatedAt = s.now()
		if err := s.feeRepo.SaveFee(ctx, &fee); err != nil {
			return err
		}
		if !fee.Recurs() {
			return nil
		}
		seed := domain.FeeRecurrence{FeeID: fee.ID, PreviousFeeID: fee.ID, DueDate: fee.DueDate}
		return s.recurrenceRepo.SaveRecurrence(ctx, &seed)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create fee", slog.String("name", fee.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Fee created", slog.Int64("fee_id", fee.ID), slog.Bool("recurring", fee.Recurs()))
	return &fee, nil
}

func (s *feeService) UpdateFee(ctx context.Context, feeID int64, req dto.UpdateFeeRequest) (*domain.Fee, error) {
	updated, err := feeFromRequest(dto.CreateFeeRequest(req))
	if err != nil {
		return nil, err
	}
	updated.ID = feeID

	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.feeRepo.FindFeeByID(ctx, feeID)
		if err != nil {
			return err
		}
		updated.CreatedAt = existing.CreatedAt
		if err := s.feeRepo.UpdateFee(ctx, updated); err != nil {
			return err
		}
		return s.syncRecurrence(ctx, *existing, updated)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update fee", slog.Int64("fee_id", feeID))
		}
		return nil, err
	}
	return &updated, nil
}

// syncRecurrence keeps the fee's chain link consistent with its new recurrence settings.
func (s *feeService) syncRecurrence(ctx context.Context, before, after domain.Fee) error {
	switch {
	case !after.Recurs():
		if before.Recurs() {
			return s.recurrenceRepo.DeleteRecurrence(ctx, after.ID)
		}
		return nil
	case before.Recurs():
		return s.recurrenceRepo.UpdateRecurrenceDueDate(ctx, after.ID, after.DueDate)
	}

	_, err := s.recurrenceRepo.FindRecurrenceByFeeID(ctx, after.ID)
	if err == nil {
		return s.recurrenceRepo.UpdateRecurrenceDueDate(ctx, after.ID, after.DueDate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	seed := domain.FeeRecurrence{FeeID: after.ID, PreviousFeeID: after.ID, DueDate: after.DueDate}
	return s.recurrenceRepo.SaveRecurrence(ctx, &seed)
}

func (s *feeService) DeleteFee(ctx context.Context, feeID int64) error {
	if err := s.feeRepo.DeleteFee(ctx, feeID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete fee", slog.Int64("fee_id", feeID))
		}
		return err
	}
	s.LogInfo(ctx, "Fee deleted", slog.Int64("fee_id", feeID))
	return nil
}

func (s *feeService) ListFees(ctx context.Context) ([]domain.Fee, error) {
	fees, err := s.feeRepo.FindFees(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fees")
		return nil, err
	}
	return fees, nil
}

func (s *feeService) GetFeeDetail(ctx context.Context, feeID int64) (*domain.FeeDetail, error) {
	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.FindAssignmentsByFee(ctx, feeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fee assignments", slog.Int64("fee_id", feeID))
		return nil, err
	}
	return &domain.FeeDetail{Fee: *fee, Assignments: assignments}, nil
}

func (s *feeService) GetFeeStatistics(ctx context.Context, feeID int64) (*domain.FeeStatistics, error) {
	fee, err := s.feeRepo.FindFeeByID(ctx, feeID)
	if err != nil {
		return nil, err
	}
	assigned, paid, collected, err := s.feeRepo.FindFeeCollection(ctx, feeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute fee collection", slog.Int64("fee_id", feeID))
		return nil, err
	}
	stats := domain.NewFeeStatistics(*fee, assigned, paid, collected)
	return &stats, nil
}

func (s *feeService) AssignFee(ctx context.Context, feeID int64, roomNumbers []int, managerID int64) (*domain.AssignResult, error) {
	rooms := slices.Clone(roomNumbers)
	slices.Sort(rooms)
	rooms = slices.Compact(rooms)
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: at least one room is required", apperrors.ErrValidation)
	}

	var (
		result  *domain.AssignResult
		fee     *domain.Fee
		tenants map[int]int64
	)
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		result = &domain.AssignResult{FeeID: feeID}
		tenants = make(map[int]int64)

		var err error
		fee, err = s.feeRepo.FindFeeByID(ctx, feeID)
		if err != nil {
			return err
		}

		existing, err := s.roomRepo.FindRoomsByNumbers(ctx, rooms)
		if err != nil {
			return err
		}
		if len(existing) != len(rooms) {
			return fmt.Errorf("rooms %v: %w", missingRooms(rooms, existing), apperrors.ErrNotFound)
		}
		for _, room := range existing {
			if room.TenantID != nil {
				tenants[room.RoomNumber] = *room.TenantID
			}
		}

		var notices []domain.Notification
		for _, roomNumber := range rooms {
			assignment := domain.FeeAssignment{RoomNumber: roomNumber, FeeID: fee.ID, DueDate: fee.DueDate}
			created, err := s.assignmentRepo.SaveAssignment(ctx, &assignment)
			if err != nil {
				return err
			}
			if !created {
				result.SkippedRooms = append(result.SkippedRooms, roomNumber)
				continue
			}
			result.Assigned = append(result.Assigned, assignment)

			if tenantID, ok := tenants[roomNumber]; ok {
				notices = append(notices, s.feeNotification(*fee, assignment, managerID, tenantID))
			}
		}
		if len(notices) == 0 {
			return nil
		}
		return s.notificationRepo.SaveNotifications(ctx, notices)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to assign fee", slog.Int64("fee_id", feeID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Fee assigned",
		slog.Int64("fee_id", feeID),
		slog.Int("assigned", len(result.Assigned)),
		slog.Int("skipped", len(result.SkippedRooms)))
	s.mailTenants(ctx, *fee, result.Assigned, tenants)
	return result, nil
}

func (s *feeService) feeNotification(fee domain.Fee, a domain.FeeAssignment, from, to int64) domain.Notification {
	return domain.Notification{
		Title: "New fee: " + fee.Name,
		Message: fmt.Sprintf("Room %d has a fee %q of %s due on %s. Use %s as the transfer reference.",
			a.RoomNumber, fee.Name, utils.FormatAmount(fee.Amount), fee.DueDate.Format(noticeDateLayout),
			domain.PaymentCode(s.codePrefix, a.ID)),
		CreatedAt: s.now(),
		FromUser:  from,
		ToUser:    to,
	}
}

// mailTenants is best effort; the assignment is already committed.
func (s *feeService) mailTenants(ctx context.Context, fee domain.Fee, assigned []domain.FeeAssignment, tenants map[int]int64) {
	if s.mailer == nil {
		return
	}
	for _, a := range assigned {
		tenantID, ok := tenants[a.RoomNumber]
		if !ok {
			continue
		}
		tenant, err := s.userRepo.FindUserByID(ctx, tenantID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load tenant for fee mail", slog.Int64("user_id", tenantID))
			continue
		}
		notice := mail.FeeNotice{
			TenantName:  tenant.Name,
			RoomNumber:  a.RoomNumber,
			FeeName:     fee.Name,
			Amount:      utils.FormatAmount(fee.Amount),
			DueDate:     a.DueDate.Format(noticeDateLayout),
			PaymentCode: domain.PaymentCode(s.codePrefix, a.ID),
		}
		if err := s.mailer.SendFeeAssignedMail(ctx, tenant.Email, notice); err != nil {
			s.LogError(ctx, err, "Failed to send fee mail", slog.Int64("user_id", tenantID))
		}
	}
}

func missingRooms(want []int, found []domain.Room) []int {
	have := make(map[int]bool, len(found))
	for _, r := range found {
		have[r.RoomNumber] = true
	}
	var missing []int
	for _, n := range want {
		if !have[n] {
			missing = append(missing, n)
		}
	}
	return missing
}
