package models

import (
	"database/sql"
	"time"
)

// Notification represents a row of the notifications table.
type Notification struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
	FromUser  int64     `db:"from_user"`
	ToUser    int64     `db:"to_user"`
}

// FamilyMember represents a row of the family table.
type FamilyMember struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Birthday  time.Time `db:"birthday"`
	AccountID int64     `db:"account_id"`
}

// TransactionLog represents a row of the transaction_logs table.
type TransactionLog struct {
	ID              int64          `db:"id"`
	Gateway         string         `db:"gateway"`
	TransactionDate time.Time      `db:"transaction_date"`
	AccountNumber   string         `db:"account_number"`
	SubAccount      sql.NullString `db:"sub_account"`
	TransferAmount  int64          `db:"transfer_amount"`
	Accumulated     int64          `db:"accumulated"`
	Code            sql.NullString `db:"code"`
	Content         string         `db:"content"`
	ReferenceCode   string         `db:"reference_code"`
	Description     string         `db:"description"`
}

// PasswordRecoveryRequest represents a row of the password_recovery_requests table.
type PasswordRecoveryRequest struct {
	ID           string    `db:"id"`
	UserID       int64     `db:"user_id"`
	RecoveryTime time.Time `db:"recovery_time"`
	ExpiresAt    time.Time `db:"expires_at"`
}
