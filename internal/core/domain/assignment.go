package domain

import "time"

// FeeAssignment binds a fee to a room. It flips from unpaid to paid exactly once.
type FeeAssignment struct {
	ID          int64      `json:"assignment_id"`
	RoomNumber  int        `json:"room_number"`
	FeeID       int64      `json:"fee_id"`
	DueDate     time.Time  `json:"due_date"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	IsPaid      bool       `json:"is_paid"`
}

// MarkPaid settles the assignment at the given instant.
func (a *FeeAssignment) MarkPaid(at time.Time) {
	a.IsPaid = true
	a.PaymentDate = &at
}

// HouseholdFee is an assignment as seen by the tenant, with fee name and amount.
type HouseholdFee struct {
	FeeAssignment
	FeeName    string `json:"fee_name"`
	Amount     int64  `json:"amount"`
	IsRequired bool   `json:"is_required"`
}

// Household is the room of a tenant and the fees assigned to it.
type Household struct {
	RoomNumber int            `json:"room_number"`
	Tenant     User           `json:"tenant"`
	Fees       []HouseholdFee `json:"fees"`
}

// AssignResult reports a bulk assignment of one fee to several rooms.
type AssignResult struct {
	FeeID    int64
	Assigned []FeeAssignment
	// SkippedRooms already held the fee.
	SkippedRooms []int
}
