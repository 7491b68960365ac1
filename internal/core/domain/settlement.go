package domain

import "time"

// PaymentSource identifies which entry point triggered a settlement.
type PaymentSource string

const (
	PaymentSourceManual  PaymentSource = "manual"
	PaymentSourceWebhook PaymentSource = "webhook"
)

// AdvanceOutcome describes what the recurrence advance did after a payment.
type AdvanceOutcome string

const (
	// AdvanceNone means the fee is one-off; nothing further was created.
	AdvanceNone AdvanceOutcome = "none"
	// AdvanceLinked means the next period already existed and only an
	// assignment for the paying room was created.
	AdvanceLinked AdvanceOutcome = "linked"
	// AdvanceMinted means a new fee instance and recurrence link were created.
	AdvanceMinted AdvanceOutcome = "minted"
)

// SettlementResult reports the effect of one payment.
type SettlementResult struct {
	Assignment FeeAssignment `json:"assignment"`
	// AlreadyPaid is set when a manual payment hit a settled assignment and
	// nothing was changed.
	AlreadyPaid bool           `json:"already_paid"`
	Transaction *Transaction   `json:"transaction,omitempty"`
	Outcome     AdvanceOutcome `json:"outcome"`
	NextFee     *Fee           `json:"next_fee,omitempty"`
	// NextAssignment is nil when the room already held the next period.
	NextAssignment *FeeAssignment `json:"next_assignment,omitempty"`
}

// TransferPayment is a webhook payment reduced to what settlement needs.
type TransferPayment struct {
	AssignmentID  int64
	Amount        int64
	TransferredAt time.Time
}
