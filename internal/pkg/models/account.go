package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Account is a registered user. PasswordHash never leaves the service.
type Account struct {
	ID           int64      `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	Phone        *string    `json:"phone" db:"phone"`
	Address      *string    `json:"address" db:"address"`
	City         *string    `json:"city" db:"city"`
	Country      *string    `json:"country" db:"country"`
	DOB          *Date      `json:"dob" db:"dob"`
	Gender       *string    `json:"gender" db:"gender"`
	PasswordHash string     `json:"-" db:"password"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest represents a request to login with email and password
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token     string `json:"token"`
	AccountID int64  `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// UpdateAccountRequest overwrites every profile field. Password is always re-hashed.
type UpdateAccountRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Country  *string `json:"country"`
	DOB      *Date   `json:"dob"`
	Gender   *string `json:"gender"`
}

// ChangePasswordRequest carries the old and new password of the token holder
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ForgotPasswordRequest starts a phone based password reset
type ForgotPasswordRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// ResetPasswordRequest completes a password reset with the delivered code
type ResetPasswordRequest struct {
	Phone       string  `json:"phone" validate:"required"`
	OTP         OTPCode `json:"otp" validate:"required"`
	NewPassword string  `json:"newPassword" validate:"required"`
}

// OTPCode accepts the code either as a JSON string or a JSON number
type OTPCode string

func (c *OTPCode) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*c = OTPCode(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("otp must be a string or a number: %w", err)
	}
	*c = OTPCode(n.String())
	return nil
}

// OTPDelivery is the event published to the delivery channel
type OTPDelivery struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
