package usecase

import (
	"context"
	"errors"

	"github.com/piresc/accounts/internal/pkg/apperror"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/pkg/otp"
)

// RequestPasswordReset issues a code for the account owning phone and delivers it.
// A new request replaces any code still pending for the same phone.
func (uc *AccountUC) RequestPasswordReset(ctx context.Context, phone string) error {
	if _, err := uc.accountRepo.GetAccountByPhone(ctx, phone); err != nil {
		return internal("get account by phone", err)
	}

	entry, err := uc.otpStore.Issue(ctx, phone)
	if err != nil {
		return internal("issue otp", err)
	}

	delivery := &models.OTPDelivery{
		Phone:     phone,
		Code:      entry.String(),
		ExpiresAt: entry.ExpiresAt,
	}
	if err := uc.accountGW.DeliverOTP(ctx, delivery); err != nil {
		logger.Error("Failed to deliver OTP",
			logger.String("phone", phone),
			logger.Err(err),
		)
		// an undeliverable code must not stay redeemable
		if expErr := uc.otpStore.Expire(ctx, phone); expErr != nil {
			logger.Warn("Failed to expire undelivered OTP",
				logger.String("phone", phone),
				logger.Err(expErr),
			)
		}
		return internal("deliver otp", err)
	}

	return nil
}

// ConfirmPasswordReset consumes the pending code for phone and sets the new password
func (uc *AccountUC) ConfirmPasswordReset(ctx context.Context, req *models.ResetPasswordRequest) error {
	hash, err := uc.passwords.Hash(req.NewPassword)
	if err != nil {
		return internal("hash password", err)
	}

	err = uc.otpStore.Confirm(ctx, req.Phone, string(req.OTP))
	switch {
	case errors.Is(err, otp.ErrNoPendingCode), errors.Is(err, otp.ErrCodeMismatch):
		return apperror.ErrInvalidOrExpiredCode
	case err != nil:
		return internal("confirm otp", err)
	}

	if err := uc.accountRepo.UpdatePasswordByPhone(ctx, req.Phone, hash); err != nil {
		return internal("update password", err)
	}

	logger.Info("Password reset", logger.String("phone", req.Phone))
	return nil
}
