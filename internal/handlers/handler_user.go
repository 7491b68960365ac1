package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/SscSPs/apartment_fee_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService         portssvc.UserSvcFacade
	notificationService portssvc.NotificationSvc
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, ns portssvc.NotificationSvc) *userHandler {
	return &userHandler{
		userService:         us,
		notificationService: ns,
	}
}

// registerUserRoutes registers the caller's own account routes.
func registerUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newUserHandler(services.User, services.Notification)

	user := rg.Group("/user")
	{
		user.GET("/info", h.getInfo)
		user.PUT("/info", h.updateInfo)
		user.PUT("/password", h.changePassword)
		user.GET("/role", h.getRole)
		user.GET("/notifications", h.listNotifications)
	}
}

// registerAdminRoutes registers account administration routes.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newUserHandler(services.User, services.Notification)

	admin := rg.Group("/admin")
	{
		admin.GET("/users", h.listUsers)
		admin.PATCH("/users/:id/status", h.updateUserStatus)
		admin.GET("/check", h.adminCheck)
	}
}

// getInfo godoc
// @Summary Get own account
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/info [get]
func (h *userHandler) getInfo(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// updateInfo godoc
// @Summary Update own account
// @Description Updates name, e-mail and phone. Omitted fields are kept.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.UpdateUserInfoRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "E-mail already used"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/info [put]
func (h *userHandler) updateInfo(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.userService.UpdateUserInfo(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// changePassword godoc
// @Summary Change own password
// @Tags users
// @Accept json
// @Param password body dto.ChangePasswordRequest true "Old and new password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Old password is incorrect"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}

// getRole godoc
// @Summary Get own role
// @Tags users
// @Produce json
// @Success 200 {object} dto.RoleResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/role [get]
func (h *userHandler) getRole(c *gin.Context) {
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.RoleResponse{Role: role})
}

// listNotifications godoc
// @Summary List own notifications
// @Description Notifications sent to or by the caller, newest first.
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /user/notifications [get]
func (h *userHandler) listNotifications(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	cursor, err := pagination.DecodeCursor(params.NextToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid next_token"})
		return
	}

	views, next, err := h.notificationService.ListNotifications(c.Request.Context(), userID, cursor, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	resp := dto.ListNotificationsResponse{Notifications: views}
	if resp.Notifications == nil {
		resp.Notifications = []domain.NotificationView{}
	}
	if next != nil {
		token := pagination.EncodeCursor(next.CreatedAt, next.ID)
		resp.NextToken = &token
	}
	c.JSON(http.StatusOK, resp)
}

// listUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users, params))
}

// updateUserStatus godoc
// @Summary Activate or deactivate an account
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param status body dto.UpdateUserStatusRequest true "New status"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/status [patch]
func (h *userHandler) updateUserStatus(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.userService.UpdateUserStatus(c.Request.Context(), targetID, req.Status)
	if err != nil {
		respondError(c, err, "Failed to update user status")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account status changed",
		slog.Int64("target_user_id", targetID), slog.String("status", string(req.Status)))
	c.JSON(http.StatusOK, dto.ToUserResponse(*user))
}

// adminCheck godoc
// @Summary Confirm admin access
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/check [get]
func (h *userHandler) adminCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin": true})
}
