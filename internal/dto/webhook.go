package dto

import (
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
)

// TransferNotificationRequest is the payment gateway's bank-transfer payload.
//
//	{
//	  "id": 3,
//	  "gateway": "Vietcombank",
//	  "transactionDate": "2023-03-25 00:00:01",
//	  "accountNumber": "0123499999",
//	  "code": null,
//	  "content": "FLATAPP42",
//	  "transferType": "in",
//	  "transferAmount": 2277000,
//	  "accumulated": 19077000,
//	  "subAccount": null,
//	  "referenceCode": "MBVCB.3278907687",
//	  "description": ""
//	}
type TransferNotificationRequest struct {
	ID              int64   `json:"id" binding:"required"`
	Gateway         string  `json:"gateway"`
	TransactionDate string  `json:"transactionDate"`
	AccountNumber   string  `json:"accountNumber"`
	SubAccount      *string `json:"subAccount"`
	Code            *string `json:"code"`
	Content         string  `json:"content"`
	TransferType    string  `json:"transferType"`
	TransferAmount  int64   `json:"transferAmount"`
	Accumulated     int64   `json:"accumulated"`
	ReferenceCode   *string `json:"referenceCode"`
	Description     *string `json:"description"`
}

// ToTransactionLog converts the payload. An unparseable transactionDate
// falls back to now.
func (r TransferNotificationRequest) ToTransactionLog(now time.Time) domain.TransactionLog {
	txDate, err := time.ParseInLocation(domain.GatewayDateLayout, r.TransactionDate, time.Local)
	if err != nil {
		txDate = now
	}
	log := domain.TransactionLog{
		ID:              r.ID,
		Gateway:         r.Gateway,
		TransactionDate: txDate,
		AccountNumber:   r.AccountNumber,
		SubAccount:      r.SubAccount,
		TransferAmount:  r.TransferAmount,
		Accumulated:     r.Accumulated,
		Code:            r.Code,
		Content:         r.Content,
	}
	if r.ReferenceCode != nil {
		log.ReferenceCode = *r.ReferenceCode
	}
	if r.Description != nil {
		log.Description = *r.Description
	}
	return log
}

// WebhookResponse acknowledges a processed transfer.
type WebhookResponse struct {
	Success bool `json:"success"`
}

// PaymentStatusResponse is returned by GET /webhook/payment/{id} when paid.
type PaymentStatusResponse struct {
	AssignmentID int64      `json:"assignment_id"`
	IsPaid       bool       `json:"is_paid"`
	PaymentDate  *time.Time `json:"payment_date,omitempty"`
}
