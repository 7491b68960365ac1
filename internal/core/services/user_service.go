package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
)

type userService struct {
	BaseService
	txRunner portsrepo.TxRunner
	userRepo portsrepo.UserRepositoryFacade
	roomRepo portsrepo.RoomRepository
}

// NewUserService creates the account management service.
func NewUserService(repos portsrepo.RepositoryProvider) portssvc.UserSvcFacade {
	return &userService{
		txRunner: repos.TxRunner,
		userRepo: repos.UserRepo,
		roomRepo: repos.RoomRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest, status domain.UserStatus) (*domain.User, error) {
	if !req.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}
	if req.RoomNumber != nil && req.Role != domain.RoleTenant {
		return nil, fmt.Errorf("%w: only tenants can be bound to a room", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         req.Role,
		Status:       status,
	}

	err = s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		user.ID = 0
		if err := s.userRepo.SaveUser(ctx, &user); err != nil {
			return err
		}
		if req.RoomNumber == nil {
			return nil
		}
		return s.roomRepo.SaveRoom(ctx, domain.Room{RoomNumber: *req.RoomNumber, TenantID: &user.ID})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Registration conflicts with an existing account or room",
				slog.String("username", user.Username))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to create user", slog.String("username", user.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("status", string(user.Status)))
	return &user, nil
}

func (s *userService) UpdateUserInfo(ctx context.Context, userID int64, req dto.UpdateUserInfoRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if user.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}

	if err := s.userRepo.UpdateUserInfo(ctx, *user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update user info", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return fmt.Errorf("%w: old password is incorrect", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.Int64("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Password changed", slog.Int64("user_id", userID))
	return nil
}

func (s *userService) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*domain.User, error) {
	if status != domain.StatusActive && status != domain.StatusInactive {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	if err := s.userRepo.UpdateUserStatus(ctx, userID, status); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update user status", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "User status changed", slog.Int64("user_id", userID), slog.String("status", string(status)))
	return s.userRepo.FindUserByID(ctx, userID)
}
