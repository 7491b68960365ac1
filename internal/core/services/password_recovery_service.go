package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/platform/mail"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
	"github.com/google/uuid"
)

const passwordResetPath = "/password-reset"

type passwordRecoveryService struct {
	BaseService
	txRunner        portsrepo.TxRunner
	userRepo        portsrepo.UserRepositoryFacade
	recoveryRepo    portsrepo.PasswordRecoveryRepository
	mailer          mail.Mailer
	ttl             time.Duration
	frontendBaseURL string
}

// NewPasswordRecoveryService creates the password recovery service. Reset
// links point at frontendBaseURL and stay valid for ttl.
func NewPasswordRecoveryService(repos portsrepo.RepositoryProvider, mailer mail.Mailer, ttl time.Duration, frontendBaseURL string, base BaseService) portssvc.PasswordRecoverySvc {
	return &passwordRecoveryService{
		BaseService:     base,
		txRunner:        repos.TxRunner,
		userRepo:        repos.UserRepo,
		recoveryRepo:    repos.PasswordRecoveryRepo,
		mailer:          mailer,
		ttl:             ttl,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
	}
}

var _ portssvc.PasswordRecoverySvc = (*passwordRecoveryService)(nil)

func (s *passwordRecoveryService) RequestRecovery(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Password recovery for unknown e-mail ignored")
			return nil
		}
		s.LogError(ctx, err, "Failed to look up user for password recovery")
		return err
	}

	now := s.now()
	recovery := domain.PasswordRecovery{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RecoveryTime: now,
		ExpiresAt:    now.Add(s.ttl),
	}
	if err := s.recoveryRepo.SavePasswordRecovery(ctx, recovery); err != nil {
		s.LogError(ctx, err, "Failed to store password recovery", slog.Int64("user_id", user.ID))
		return err
	}

	link := s.frontendBaseURL + passwordResetPath + "?token=" + url.QueryEscape(recovery.ID)
	if err := s.mailer.SendPasswordRecoveryMail(ctx, user.Email, link); err != nil {
		s.LogError(ctx, err, "Failed to send password recovery mail", slog.Int64("user_id", user.ID))
		return fmt.Errorf("failed to send recovery mail: %w", err)
	}
	s.LogInfo(ctx, "Password recovery requested", slog.Int64("user_id", user.ID))
	return nil
}

func (s *passwordRecoveryService) ConfirmRecovery(ctx context.Context, req dto.ConfirmRecoveryRequest) error {
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	var userID int64
	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		recovery, err := s.recoveryRepo.FindPasswordRecovery(ctx, req.Token)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown recovery token", apperrors.ErrValidation)
			}
			return err
		}
		if recovery.Expired(s.now()) {
			return fmt.Errorf("%w: recovery token expired", apperrors.ErrValidation)
		}
		userID = recovery.UserID
		if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		if err := s.recoveryRepo.DeletePasswordRecoveries(ctx, userID); err != nil {
			return err
		}
		// a reset also ends every open session
		_, err = s.userRepo.IncrementRefreshTokenVersion(ctx, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to confirm password recovery")
		}
		return err
	}
	s.LogInfo(ctx, "Password reset", slog.Int64("user_id", userID))
	return nil
}
