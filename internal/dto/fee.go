package dto

import (
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
)

// CreateFeeRequest defines the data needed to create a fee.
type CreateFeeRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Amount      int64     `json:"amount" binding:"required,gt=0"`
	IsRequired  bool      `json:"is_required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	IsRecurring bool      `json:"is_recurring"`
	// RecurrenceType is one of weekly, monthly, yearly. Required when IsRecurring.
	RecurrenceType *string `json:"recurrence_type" binding:"omitempty,recurrence"`
}

// UpdateFeeRequest replaces every editable field of a fee.
type UpdateFeeRequest CreateFeeRequest

// AssignFeeResponse reports which rooms received a new assignment.
type AssignFeeResponse struct {
	FeeID        int64                  `json:"fee_id"`
	Assigned     []domain.FeeAssignment `json:"assigned"`
	SkippedRooms []int                  `json:"skipped_rooms"`
}

func ToAssignFeeResponse(res domain.AssignResult) AssignFeeResponse {
	assigned := res.Assigned
	if assigned == nil {
		assigned = []domain.FeeAssignment{}
	}
	skipped := res.SkippedRooms
	if skipped == nil {
		skipped = []int{}
	}
	return AssignFeeResponse{FeeID: res.FeeID, Assigned: assigned, SkippedRooms: skipped}
}

// ListFeesResponse wraps the list of fees.
type ListFeesResponse struct {
	Fees []domain.Fee `json:"fees"`
}

// FeeStatisticsResponse renders money as formatted strings next to raw decimals.
type FeeStatisticsResponse struct {
	domain.FeeStatistics
	CollectedDisplay   string `json:"collected_display"`
	OutstandingDisplay string `json:"outstanding_display"`
}
