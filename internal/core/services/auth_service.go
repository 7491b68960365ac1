package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/platform/config"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// TokenSettings are the signing parameters of access and refresh tokens.
type TokenSettings struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
	Issuer        string
}

// TokenSettingsFromConfig extracts the token settings from the app config.
func TokenSettingsFromConfig(cfg *config.Config) TokenSettings {
	return TokenSettings{
		AccessSecret:  cfg.JWTSecret,
		AccessExpiry:  cfg.JWTExpiryDuration,
		RefreshSecret: cfg.RefreshTokenSecret,
		RefreshExpiry: cfg.RefreshTokenExpiryDuration,
		Issuer:        cfg.JWTIssuer,
	}
}

// authService implements AuthSvcFacade. Refresh tokens are stateless JWTs
// bound to the user's refresh_token_version; logout bumps the version.
type authService struct {
	BaseService
	tokens      TokenSettings
	userRepo    portsrepo.UserRepositoryFacade
	userService portssvc.UserWriterSvc
}

// NewAuthService creates a new instance of authService.
func NewAuthService(tokens TokenSettings, userRepo portsrepo.UserRepositoryFacade, userService portssvc.UserWriterSvc, base BaseService) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: base,
		tokens:      tokens,
		userRepo:    userRepo,
		userService: userService,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	return s.userService.CreateUser(ctx, req, domain.StatusInactive)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login for unknown username", slog.String("username", req.Username))
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login with wrong password", slog.Int64("user_id", user.ID))
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, apperrors.ErrInactiveAccount
	}

	now := s.now()
	accessToken, err := utils.GenerateAccessToken(*user, s.tokens.AccessSecret, s.tokens.AccessExpiry, s.tokens.Issuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(*user, s.tokens.RefreshSecret, s.tokens.RefreshExpiry, s.tokens.Issuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign refresh token", slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.Int64("user_id", user.ID))
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.AccessExpiry.Seconds()),
		TokenType:    dto.TokenTypeBearer,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	claims, err := utils.ParseRefreshToken(refreshToken, s.tokens.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrRefreshTokenExpired
		}
		s.LogWarn(ctx, "Invalid refresh token", slog.String("error", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for refresh", slog.Int64("user_id", userID))
		return nil, err
	}
	if claims.RefreshTokenVersion != user.RefreshTokenVersion {
		s.LogWarn(ctx, "Refresh token from a closed session",
			slog.Int64("user_id", userID),
			slog.Int("token_version", claims.RefreshTokenVersion),
			slog.Int("current_version", user.RefreshTokenVersion))
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, apperrors.ErrUnauthorized
	}

	accessToken, err := utils.GenerateAccessToken(*user, s.tokens.AccessSecret, s.tokens.AccessExpiry, s.tokens.Issuer, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &dto.RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.tokens.AccessExpiry.Seconds()),
		TokenType:   dto.TokenTypeBearer,
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID int64) error {
	version, err := s.userRepo.IncrementRefreshTokenVersion(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to revoke refresh tokens", slog.Int64("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User logged out", slog.Int64("user_id", userID), slog.Int("refresh_token_version", version))
	return nil
}
