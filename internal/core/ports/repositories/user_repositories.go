package repositories

import (
	"context"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique e-mail address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByContact matches a username, e-mail or phone number.
	FindUserByContact(ctx context.Context, contact string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// FindUserIDsByRole lists the ids of every user with the given role.
	FindUserIDsByRole(ctx context.Context, role domain.UserRole) ([]int64, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user and sets its ID.
	SaveUser(ctx context.Context, user *domain.User) error

	// UpdateUserInfo updates name, e-mail and phone.
	UpdateUserInfo(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error

	// UpdateUserStatus activates or deactivates an account.
	UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) error

	// IncrementRefreshTokenVersion bumps the session epoch and returns the new value.
	IncrementRefreshTokenVersion(ctx context.Context, userID int64) (int, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
