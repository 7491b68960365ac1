package dto

import (
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Username string            `json:"username"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Role     domain.UserRole   `json:"role"`
	Status   domain.UserStatus `json:"status"`
}

func ToUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Role:     user.Role,
		Status:   user.Status,
	}
}

// UpdateUserInfoRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserInfoRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,max=32"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// RoleResponse is returned by GET /user/role.
type RoleResponse struct {
	Role domain.UserRole `json:"role"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User, params ListUsersParams) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(user)
	}
	return ListUsersResponse{
		Users:  userResponses,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
}

// UpdateUserStatusRequest is the admin body for activating or deactivating an account.
type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"status" binding:"required,oneof=active inactive"`
}
