package usecase

import (
	"github.com/piresc/accounts/internal/pkg/models"
	"github.com/piresc/accounts/internal/pkg/otp"
	"github.com/piresc/accounts/internal/pkg/password"
	"github.com/piresc/accounts/services/accounts"
)

// TokenIssuer signs session tokens for an account
type TokenIssuer interface {
	Issue(accountID int64) (string, int64, error)
}

type AccountUC struct {
	accountRepo accounts.AccountRepo
	accountGW   accounts.AccountGW
	otpStore    otp.Store
	passwords   password.Service
	tokens      TokenIssuer
	cfg         *models.Config
}

// NewAccountUC creates a new account usecase instance
func NewAccountUC(
	accountRepo accounts.AccountRepo,
	accountGW accounts.AccountGW,
	otpStore otp.Store,
	passwords password.Service,
	tokens TokenIssuer,
	cfg *models.Config,
) *AccountUC {
	return &AccountUC{
		accountRepo: accountRepo,
		accountGW:   accountGW,
		otpStore:    otpStore,
		passwords:   passwords,
		tokens:      tokens,
		cfg:         cfg,
	}
}
