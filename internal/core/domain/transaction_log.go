package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// TransactionLog is a bank-transfer notification as delivered by the payment
// gateway. ID is the gateway's transfer id.
type TransactionLog struct {
	ID              int64     `json:"id"`
	Gateway         string    `json:"gateway"`
	TransactionDate time.Time `json:"transaction_date"`
	AccountNumber   string    `json:"account_number"`
	SubAccount      *string   `json:"sub_account,omitempty"`
	TransferAmount  int64     `json:"transfer_amount"`
	Accumulated     int64     `json:"accumulated"`
	Code            *string   `json:"code,omitempty"`
	Content         string    `json:"content"`
	ReferenceCode   string    `json:"reference_code"`
	Description     string    `json:"description"`
}

// DefaultPaymentCodePrefix precedes the assignment id in transfer descriptions.
const DefaultPaymentCodePrefix = "FLATAPP"

// GatewayDateLayout is the timestamp layout used by the payment gateway.
const GatewayDateLayout = "2006-01-02 15:04:05"

// PaymentCodeExtractor finds the assignment id embedded in free-form transfer content.
type PaymentCodeExtractor struct {
	re *regexp.Regexp
}

// NewPaymentCodeExtractor builds an extractor for codes of the form <prefix><digits>.
func NewPaymentCodeExtractor(prefix string) *PaymentCodeExtractor {
	if prefix == "" {
		prefix = DefaultPaymentCodePrefix
	}
	return &PaymentCodeExtractor{re: regexp.MustCompile(regexp.QuoteMeta(prefix) + `([0-9]+)`)}
}

// AssignmentID returns the first embedded assignment id. Leading zeros are ignored.
func (e *PaymentCodeExtractor) AssignmentID(content string) (int64, error) {
	m := e.re.FindStringSubmatch(content)
	if m == nil {
		return 0, fmt.Errorf("no payment code in %q", content)
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid payment code %q: %w", m[1], err)
	}
	return id, nil
}

// PaymentCode renders the reference a tenant must put in the transfer description.
func PaymentCode(prefix string, assignmentID int64) string {
	if prefix == "" {
		prefix = DefaultPaymentCodePrefix
	}
	return prefix + strconv.FormatInt(assignmentID, 10)
}
