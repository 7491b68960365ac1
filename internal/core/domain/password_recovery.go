package domain

import "time"

// PasswordRecovery is a one-time reset token sent to the account's e-mail.
type PasswordRecovery struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id"`
	RecoveryTime time.Time `json:"recovery_time"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the token can no longer be redeemed at now.
func (p PasswordRecovery) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
