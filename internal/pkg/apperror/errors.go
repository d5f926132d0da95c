package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicatePhone       = errors.New("phone already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNotFound             = errors.New("user not found")
	ErrIncorrectOldPassword = errors.New("old password is incorrect")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired otp")
	ErrInvalidToken         = errors.New("invalid token")
	ErrExpiredToken         = errors.New("token expired")
	ErrValidation           = errors.New("validation failed")
	ErrInternal             = errors.New("internal server error")
)

type mapping struct {
	err     error
	status  int
	message string
}

// Order matters only for errors that wrap more than one kind.
var mappings = []mapping{
	{ErrDuplicateEmail, http.StatusBadRequest, "Email already exists"},
	{ErrDuplicatePhone, http.StatusBadRequest, "Phone already exists"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{ErrNotFound, http.StatusNotFound, "User not found"},
	{ErrIncorrectOldPassword, http.StatusBadRequest, "Old password is incorrect"},
	{ErrInvalidOrExpiredCode, http.StatusBadRequest, "Invalid or expired OTP"},
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
	{ErrValidation, http.StatusBadRequest, "Invalid request"},
}

// HTTPStatus maps an error to the response status and the message shown to the caller.
// Unknown errors become a 500 without their cause.
func HTTPStatus(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// IsInternal reports whether err falls outside the closed set of domain kinds
func IsInternal(err error) bool {
	status, _ := HTTPStatus(err)
	return status == http.StatusInternalServerError
}
