package domain

// UserRole is the coarse permission level of an account.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleTenant  UserRole = "tenant"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTenant:
		return true
	}
	return false
}

// UserStatus gates login. New registrations start inactive until an admin activates them.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// User represents an account of the application in the domain.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	// RefreshTokenVersion is the session epoch. Refresh tokens carrying an
	// older version are rejected; logout increments it.
	RefreshTokenVersion int `json:"-"`
}

// IsActive reports whether the user may log in.
func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// CanManageFees reports whether the user may create and assign fees.
func (u User) CanManageFees() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
