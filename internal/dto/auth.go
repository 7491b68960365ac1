package dto

import "github.com/SscSPs/apartment_fee_app/internal/core/domain"

// RegisterRequest defines the data needed to create an account.
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Username string          `json:"username" binding:"required,min=3,max=64"`
	Email    string          `json:"email" binding:"required,email"`
	Phone    string          `json:"phone" binding:"omitempty,max=32"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=admin manager tenant"`
	// RoomNumber binds a tenant to a room, creating the room if needed.
	RoomNumber *int `json:"room_number" binding:"omitempty,gt=0"`
}

// LoginRequest represents the login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64  `json:"expires_in"`
	TokenType string `json:"token_type"`
}

// RefreshTokenRequest carries the refresh token to exchange.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// RecoverPasswordRequest starts a password recovery.
type RecoverPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ConfirmRecoveryRequest redeems a recovery token.
type ConfirmRecoveryRequest struct {
	Token       string `json:"token" binding:"required,uuid"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

const TokenTypeBearer = "Bearer"
