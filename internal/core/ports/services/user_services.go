package services

import (
	"context"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates an account with the given initial status. Tenants
	// that name a room are bound to it.
	CreateUser(ctx context.Context, req dto.RegisterRequest, status domain.UserStatus) (*domain.User, error)

	// UpdateUserInfo changes name, e-mail or phone of the caller.
	UpdateUserInfo(ctx context.Context, userID int64, req dto.UpdateUserInfoRequest) (*domain.User, error)

	// ChangePassword verifies the old password before storing the new one.
	ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error
}

// UserAdminSvc defines operations reserved for admins
type UserAdminSvc interface {
	// UpdateUserStatus activates or deactivates an account.
	UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAdminSvc
}
