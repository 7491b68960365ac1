package models

import "database/sql"

// UserRole mirrors the user_role enum in the database.
type UserRole string

// UserStatus mirrors the user_status enum in the database.
type UserStatus string

// User represents a row of the users table.
type User struct {
	ID                  int64          `db:"id"`
	Name                string         `db:"name"`
	Username            string         `db:"username"`
	Email               string         `db:"email"`
	PasswordHash        string         `db:"password"`
	Phone               sql.NullString `db:"phone"`
	Role                UserRole       `db:"role"`
	Status              UserStatus     `db:"status"`
	RefreshTokenVersion int            `db:"refresh_token_version"`
}

// Room represents a row of the rooms table. Tenant is NULL for vacant rooms.
type Room struct {
	RoomNumber int           `db:"room_number"`
	Tenant     sql.NullInt64 `db:"tenant"`
}

// RoomDetail is a room left-joined with its tenant.
type RoomDetail struct {
	Room
	TenantName  sql.NullString `db:"tenant_name"`
	TenantEmail sql.NullString `db:"tenant_email"`
	TenantPhone sql.NullString `db:"tenant_phone"`
}
