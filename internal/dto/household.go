package dto

import (
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
)

// PayFeeParams selects the fee the caller's room pays.
type PayFeeParams struct {
	FeeID int64 `form:"fee_id" binding:"required,gt=0"`
}

// PayFeeResponse is returned by the manual payment endpoint.
type PayFeeResponse struct {
	Message string                   `json:"message"`
	Result  *domain.SettlementResult `json:"result"`
}

// HouseholdFeeResponse adds the bank-transfer reference to a household fee.
type HouseholdFeeResponse struct {
	domain.HouseholdFee
	PaymentCode string `json:"payment_code"`
}

// HouseholdResponse is the tenant's room with all assigned fees.
type HouseholdResponse struct {
	RoomNumber int                    `json:"room_number"`
	Tenant     UserResponse           `json:"tenant"`
	Fees       []HouseholdFeeResponse `json:"fees"`
}

func ToHouseholdResponse(h domain.Household, codePrefix string) HouseholdResponse {
	fees := make([]HouseholdFeeResponse, len(h.Fees))
	for i, f := range h.Fees {
		fees[i] = HouseholdFeeResponse{HouseholdFee: f, PaymentCode: domain.PaymentCode(codePrefix, f.ID)}
	}
	return HouseholdResponse{RoomNumber: h.RoomNumber, Tenant: ToUserResponse(h.Tenant), Fees: fees}
}

// CreateFamilyMemberRequest adds a family member to the caller's account.
type CreateFamilyMemberRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	// Birthday in YYYY-MM-DD.
	Birthday string `json:"birthday" binding:"required,datetime=2006-01-02"`
}

// SendNotificationRequest is sent by managers. Recipient matches a username,
// e-mail or phone; SendAll broadcasts to every account.
type SendNotificationRequest struct {
	Title     string  `json:"title" binding:"required,max=200"`
	Message   string  `json:"message" binding:"required"`
	Recipient *string `json:"to_user"`
	SendAll   bool    `json:"send_all"`
}

// SendNotificationResponse reports how many notifications were stored.
type SendNotificationResponse struct {
	Sent int `json:"sent"`
}

// ListNotificationsParams pages through notifications newest first.
type ListNotificationsParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=1,max=200"`
	NextToken string `form:"next_token"`
}

// ListNotificationsResponse holds one page of notifications.
type ListNotificationsResponse struct {
	Notifications []domain.NotificationView `json:"notifications"`
	NextToken     *string                   `json:"next_token,omitempty"`
}
