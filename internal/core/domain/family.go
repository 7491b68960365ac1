package domain

import "time"

// FamilyMember is a person living with the account holder.
type FamilyMember struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Birthday  time.Time `json:"birthday"`
	AccountID int64     `json:"account_id"`
}
