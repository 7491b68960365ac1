package domain

import "time"

// FeeRecurrence is one backward link of a recurring fee chain: FeeID follows
// PreviousFeeID. FeeID is unique so the chain never branches. A manager-created
// recurring fee starts the chain with a seed row pointing at itself.
type FeeRecurrence struct {
	ID            int64     `json:"recurrence_id"`
	FeeID         int64     `json:"fee_id"`
	PreviousFeeID int64     `json:"previous_fee_id"`
	DueDate       time.Time `json:"due_date"`
}

// IsSeed reports whether the link is the self-referential head of a chain.
func (r FeeRecurrence) IsSeed() bool {
	return r.FeeID == r.PreviousFeeID
}

// NextPeriod is the fee instance that follows a paid fee, together with the
// due date its assignments get.
type NextPeriod struct {
	Fee     Fee
	DueDate time.Time
	// Minted is set when the instance was created by this call.
	Minted bool
}
