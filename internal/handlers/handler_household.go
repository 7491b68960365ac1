package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type householdHandler struct {
	householdService  portssvc.HouseholdSvc
	settlementService portssvc.SettlementSvc
	familyService     portssvc.FamilySvc
	codePrefix        string
}

func newHouseholdHandler(services *portssvc.ServiceContainer, codePrefix string) *householdHandler {
	return &householdHandler{
		householdService:  services.Household,
		settlementService: services.Settlement,
		familyService:     services.Family,
		codePrefix:        codePrefix,
	}
}

// registerHouseholdRoutes registers the tenant's room, payment and family routes.
func registerHouseholdRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, codePrefix string) {
	h := newHouseholdHandler(services, codePrefix)

	rg.GET("/household", h.getHousehold)
	rg.POST("/household/pay", h.payFee)
	rg.POST("/family", h.addFamilyMember)
	rg.GET("/family", h.listFamilyMembers)
}

// getHousehold godoc
// @Summary Get own household
// @Description Room, tenant data and every fee assigned to the room with its transfer reference.
// @Tags household
// @Produce json
// @Success 200 {object} dto.HouseholdResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Caller has no room"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /household [get]
func (h *householdHandler) getHousehold(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	household, err := h.householdService.GetHousehold(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve household")
		return
	}
	c.JSON(http.StatusOK, dto.ToHouseholdResponse(*household, h.codePrefix))
}

// payFee godoc
// @Summary Pay a fee manually
// @Description Marks the caller's room assignment of the fee as paid and advances a recurring fee. Paying twice is a no-op.
// @Tags household
// @Produce json
// @Param fee_id query int true "Fee ID"
// @Success 200 {object} dto.PayFeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No room or fee not assigned to it"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /household/pay [post]
func (h *householdHandler) payFee(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var params dto.PayFeeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.settlementService.PayFee(c.Request.Context(), userID, params.FeeID)
	if err != nil {
		respondError(c, err, "Failed to pay fee")
		return
	}

	msg := "Fee paid"
	if result.AlreadyPaid {
		msg = "Fee was already paid"
	} else if result.Outcome != domain.AdvanceNone {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Recurring fee advanced",
			slog.Int64("fee_id", params.FeeID), slog.String("outcome", string(result.Outcome)))
	}
	c.JSON(http.StatusOK, dto.PayFeeResponse{Message: msg, Result: result})
}

// addFamilyMember godoc
// @Summary Add a family member
// @Tags household
// @Accept json
// @Produce json
// @Param member body dto.CreateFamilyMemberRequest true "Family member"
// @Success 201 {object} domain.FamilyMember
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /family [post]
func (h *householdHandler) addFamilyMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CreateFamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	member, err := h.familyService.AddFamilyMember(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to add family member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// listFamilyMembers godoc
// @Summary List family members
// @Tags household
// @Produce json
// @Success 200 {array} domain.FamilyMember
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /family [get]
func (h *householdHandler) listFamilyMembers(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	members, err := h.familyService.ListFamilyMembers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list family members")
		return
	}
	if members == nil {
		members = []domain.FamilyMember{}
	}
	c.JSON(http.StatusOK, members)
}
