package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService     portssvc.AuthSvcFacade
	recoveryService portssvc.PasswordRecoverySvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade, rs portssvc.PasswordRecoverySvc) *AuthHandler {
	return &AuthHandler{
		authService:     as,
		recoveryService: rs,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.RouterGroup, jwtSecret string, loginLimiter *limiter.Limiter, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Auth, services.PasswordRecovery)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/recover", middleware.RateLimit(loginLimiter), h.RecoverPassword)
		auth.POST("/recover/confirm", h.ConfirmRecovery)

		bearer := auth.Group("", middleware.AuthMiddleware(jwtSecret))
		bearer.POST("/logout", h.Logout)
		bearer.GET("/check", h.Check)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates an inactive account. Tenants may bind themselves to a vacant room.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (username, e-mail or room taken)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(*user))
}

// Login godoc
// @Summary User login
// @Description Authenticates an active user and returns an access and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid body or inactive account"
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		respondError(c, err, "Failed to log in")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a refresh token from a live session for a new access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out
// @Description Revokes every refresh token of the caller.
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// Check godoc
// @Summary Validate access token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/check [get]
func (h *AuthHandler) Check(c *gin.Context) {
	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user_id": principal.UserID, "role": principal.Role})
}

// RecoverPassword godoc
// @Summary Request a password reset
// @Description E-mails a reset link. Answers 200 for unknown addresses too.
// @Tags auth
// @Accept json
// @Produce json
// @Param recover body dto.RecoverPasswordRequest true "Account e-mail"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/recover [post]
func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req dto.RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.recoveryService.RequestRecovery(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to start password recovery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the e-mail is registered, a reset link has been sent"})
}

// ConfirmRecovery godoc
// @Summary Reset password with a recovery token
// @Tags auth
// @Accept json
// @Produce json
// @Param confirm body dto.ConfirmRecoveryRequest true "Token and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Unknown or expired token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/recover/confirm [post]
func (h *AuthHandler) ConfirmRecovery(c *gin.Context) {
	var req dto.ConfirmRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.recoveryService.ConfirmRecovery(c.Request.Context(), req); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
