package services

import (
	"context"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
)

// AuthSvcFacade issues and revokes session tokens.
type AuthSvcFacade interface {
	// Register creates an inactive account awaiting admin activation.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login checks credentials and issues an access and a refresh token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Refresh exchanges a refresh token for a new access token. Tokens minted
	// before the last logout are rejected.
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error)

	// Logout invalidates every refresh token issued to the user so far.
	Logout(ctx context.Context, userID int64) error
}

// PasswordRecoverySvc resets forgotten passwords through an e-mailed token.
type PasswordRecoverySvc interface {
	// RequestRecovery stores a token and mails a reset link. Unknown e-mail
	// addresses are ignored without error.
	RequestRecovery(ctx context.Context, email string) error

	// ConfirmRecovery sets a new password if the token exists and has not expired.
	ConfirmRecovery(ctx context.Context, req dto.ConfirmRecoveryRequest) error
}
