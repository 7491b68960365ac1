package domain

import "time"

// Transaction is the append-only record of money received for an assignment.
type Transaction struct {
	ID           int64     `json:"id"`
	Amount       int64     `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
	AssignmentID int64     `json:"assignment_id"`
}
