package handlers

import (
	"net/http"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// feeHandler serves manager routes for fees, rooms and notifications.
type feeHandler struct {
	feeService          portssvc.FeeSvcFacade
	roomService         portssvc.RoomSvc
	notificationService portssvc.NotificationSvc
}

func newFeeHandler(services *portssvc.ServiceContainer) *feeHandler {
	return &feeHandler{
		feeService:          services.Fee,
		roomService:         services.Room,
		notificationService: services.Notification,
	}
}

// registerManagerRoutes registers the fee, room and notification routes.
func registerManagerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newFeeHandler(services)

	fees := rg.Group("/fees")
	{
		fees.GET("", h.listFees)
		fees.POST("", h.createFee)
		fees.GET("/:id", h.getFee)
		fees.PUT("/:id", h.updateFee)
		fees.DELETE("/:id", h.deleteFee)
		fees.POST("/:id/assign", h.assignFee)
		fees.GET("/:id/statistics", h.getFeeStatistics)
	}

	rg.GET("/rooms", h.listRooms)
	rg.GET("/rooms/detailed", h.listRoomDetails)
	rg.POST("/notifications", h.sendNotification)
}

// listFees godoc
// @Summary List fees
// @Description All fees ordered by due date.
// @Tags fees
// @Produce json
// @Success 200 {object} dto.ListFeesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees [get]
func (h *feeHandler) listFees(c *gin.Context) {
	fees, err := h.feeService.ListFees(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list fees")
		return
	}
	if fees == nil {
		fees = []domain.Fee{}
	}
	c.JSON(http.StatusOK, dto.ListFeesResponse{Fees: fees})
}

// createFee godoc
// @Summary Create a fee
// @Description A recurring fee starts its own recurrence chain.
// @Tags fees
// @Accept json
// @Produce json
// @Param fee body dto.CreateFeeRequest true "Fee"
// @Success 201 {object} domain.Fee
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees [post]
func (h *feeHandler) createFee(c *gin.Context) {
	var req dto.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fee, err := h.feeService.CreateFee(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create fee")
		return
	}
	c.JSON(http.StatusCreated, fee)
}

// getFee godoc
// @Summary Get a fee with its assignments
// @Tags fees
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} domain.FeeDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/{id} [get]
func (h *feeHandler) getFee(c *gin.Context) {
	feeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.feeService.GetFeeDetail(c.Request.Context(), feeID)
	if err != nil {
		respondError(c, err, "Failed to retrieve fee")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// updateFee godoc
// @Summary Update a fee
// @Description Replaces the fee and keeps its recurrence chain link in sync.
// @Tags fees
// @Accept json
// @Produce json
// @Param id path int true "Fee ID"
// @Param fee body dto.UpdateFeeRequest true "Fee"
// @Success 200 {object} domain.Fee
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/{id} [put]
func (h *feeHandler) updateFee(c *gin.Context) {
	feeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	fee, err := h.feeService.UpdateFee(c.Request.Context(), feeID, req)
	if err != nil {
		respondError(c, err, "Failed to update fee")
		return
	}
	c.JSON(http.StatusOK, fee)
}

// deleteFee godoc
// @Summary Delete a fee
// @Description Deletes the fee together with its assignments and transactions.
// @Tags fees
// @Param id path int true "Fee ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/{id} [delete]
func (h *feeHandler) deleteFee(c *gin.Context) {
	feeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.feeService.DeleteFee(c.Request.Context(), feeID); err != nil {
		respondError(c, err, "Failed to delete fee")
		return
	}
	c.Status(http.StatusNoContent)
}

// assignFee godoc
// @Summary Assign a fee to rooms
// @Description Body is a JSON array of room numbers. Rooms already holding the fee are skipped; an unknown room fails the whole request.
// @Tags fees
// @Accept json
// @Produce json
// @Param id path int true "Fee ID"
// @Param rooms body []int true "Room numbers"
// @Success 200 {object} dto.AssignFeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Fee or room not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/{id}/assign [post]
func (h *feeHandler) assignFee(c *gin.Context) {
	feeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	managerID, ok := callerID(c)
	if !ok {
		return
	}
	var rooms []int
	if err := c.ShouldBindJSON(&rooms); err != nil {
		bindError(c, err)
		return
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.Var(rooms, "room_numbers"); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Body must be a non-empty array of positive room numbers"})
			return
		}
	}

	result, err := h.feeService.AssignFee(c.Request.Context(), feeID, rooms, managerID)
	if err != nil {
		respondError(c, err, "Failed to assign fee")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignFeeResponse(*result))
}

// getFeeStatistics godoc
// @Summary Collection statistics of a fee
// @Tags fees
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} dto.FeeStatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fees/{id}/statistics [get]
func (h *feeHandler) getFeeStatistics(c *gin.Context) {
	feeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.feeService.GetFeeStatistics(c.Request.Context(), feeID)
	if err != nil {
		respondError(c, err, "Failed to compute fee statistics")
		return
	}
	c.JSON(http.StatusOK, dto.FeeStatisticsResponse{
		FeeStatistics:      *stats,
		CollectedDisplay:   utils.FormatDecimal(stats.Collected, 0),
		OutstandingDisplay: utils.FormatDecimal(stats.Outstanding, 0),
	})
}

// listRooms godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {array} domain.Room
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms [get]
func (h *feeHandler) listRooms(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list rooms")
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

// listRoomDetails godoc
// @Summary List rooms with tenant contact data
// @Tags rooms
// @Produce json
// @Success 200 {array} domain.RoomDetail
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rooms/detailed [get]
func (h *feeHandler) listRoomDetails(c *gin.Context) {
	rooms, err := h.roomService.ListRoomDetails(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list rooms")
		return
	}
	if rooms == nil {
		rooms = []domain.RoomDetail{}
	}
	c.JSON(http.StatusOK, rooms)
}

// sendNotification godoc
// @Summary Send a notification
// @Description Sends to one user by username, e-mail or phone, or to every account with send_all.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body dto.SendNotificationRequest true "Notification"
// @Success 201 {object} dto.SendNotificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [post]
func (h *feeHandler) sendNotification(c *gin.Context) {
	senderID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sent, err := h.notificationService.SendNotification(c.Request.Context(), senderID, req)
	if err != nil {
		respondError(c, err, "Failed to send notification")
		return
	}
	c.JSON(http.StatusCreated, dto.SendNotificationResponse{Sent: sent})
}
