package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

type webhookHandler struct {
	settlementService portssvc.SettlementSvc
}

// registerWebhookRoutes registers the payment gateway callback and the
// payment status lookup used by clients polling after a transfer.
func registerWebhookRoutes(r gin.IRouter, paymentAPIKey, jwtSecret string, webhookLimiter *limiter.Limiter, services *portssvc.ServiceContainer) {
	h := &webhookHandler{settlementService: services.Settlement}

	webhook := r.Group("/webhook")
	{
		webhook.POST("/payment", middleware.RateLimit(webhookLimiter), middleware.PaymentAPIKeyAuth(paymentAPIKey), h.receivePayment)
		webhook.GET("/payment/:id", middleware.AuthMiddleware(jwtSecret), h.getPaymentStatus)
	}
}

// receivePayment godoc
// @Summary Receive a bank transfer notification
// @Description Called by the payment gateway. The transfer content must carry the payment code of an unpaid assignment and the exact fee amount.
// @Tags webhook
// @Accept json
// @Produce json
// @Param transfer body dto.TransferNotificationRequest true "Transfer notification"
// @Success 201 {object} dto.WebhookResponse
// @Failure 400 {object} ErrorResponse "Amount mismatch or already paid"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /webhook/payment [post]
func (h *webhookHandler) receivePayment(c *gin.Context) {
	var req dto.TransferNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.settlementService.SettleTransfer(c.Request.Context(), req.ToTransactionLog(time.Now()))
	if err != nil {
		respondError(c, err, "Failed to process transfer")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transfer settled",
		slog.Int64("transaction_id", req.ID),
		slog.Int64("assignment_id", result.Assignment.ID),
		slog.String("outcome", string(result.Outcome)))
	c.JSON(http.StatusCreated, dto.WebhookResponse{Success: true})
}

// getPaymentStatus godoc
// @Summary Check whether a payment code has been paid
// @Tags webhook
// @Produce json
// @Param id path int true "Assignment ID from the payment code"
// @Success 200 {object} dto.PaymentStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown or not yet paid"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /webhook/payment/{id} [get]
func (h *webhookHandler) getPaymentStatus(c *gin.Context) {
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	assignment, err := h.settlementService.GetPaymentStatus(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err, "Failed to retrieve payment status")
		return
	}
	if !assignment.IsPaid {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment not received"})
		return
	}
	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		AssignmentID: assignment.ID,
		IsPaid:       true,
		PaymentDate:  assignment.PaymentDate,
	})
}
