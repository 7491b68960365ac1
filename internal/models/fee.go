package models

import (
	"database/sql"
	"time"
)

// Fee represents a row of the fees table.
// RecurrenceType is NULL for one-off fees.
type Fee struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	Amount         int64          `db:"amount"`
	IsRequired     bool           `db:"is_required"`
	CreatedAt      time.Time      `db:"created_at"`
	DueDate        time.Time      `db:"due_date"`
	IsRecurring    bool           `db:"is_recurring"`
	RecurrenceType sql.NullString `db:"recurrence_type"`
}

// FeeRecurrence represents a row of the fee_recurrence table.
type FeeRecurrence struct {
	RecurrenceID  int64     `db:"recurrence_id"`
	FeeID         int64     `db:"fee_id"`
	PreviousFeeID int64     `db:"previous_fee_id"`
	DueDate       time.Time `db:"due_date"`
}

// FeeRoomAssignment represents a row of the fees_room_assignment table.
// RoomNumber becomes NULL when the room is deleted.
type FeeRoomAssignment struct {
	AssignmentID int64         `db:"assignment_id"`
	RoomNumber   sql.NullInt32 `db:"room_number"`
	FeeID        int64         `db:"fee_id"`
	DueDate      time.Time     `db:"due_date"`
	PaymentDate  sql.NullTime  `db:"payment_date"`
	IsPaid       bool          `db:"is_paid"`
}

// Transaction represents a row of the transactions table.
type Transaction struct {
	ID           int64     `db:"id"`
	Amount       int64     `db:"amount"`
	CreatedAt    time.Time `db:"created_at"`
	AssignmentID int64     `db:"assignment_id"`
}
