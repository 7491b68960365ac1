package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but lacks the required role.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrAlreadySettled is returned when a fee assignment has already been paid.
var ErrAlreadySettled = errors.New("fee assignment already paid")

// ErrAmountMismatch is returned when a transfer amount differs from the fee amount.
var ErrAmountMismatch = errors.New("transfer amount does not match fee amount")

// ErrReferenceCode is returned when a transfer description carries no payment reference code.
var ErrReferenceCode = errors.New("payment reference code not found in transfer content")

// ErrInactiveAccount is returned on login for accounts not yet activated by an admin.
var ErrInactiveAccount = errors.New("account is not active")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
