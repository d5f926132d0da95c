package accounts

import (
	"context"

	"github.com/piresc/accounts/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/accounts/services/accounts AccountUC

// AccountUC is the account lifecycle: registration, login, profile CRUD and password changes
type AccountUC interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)

	ListAccounts(ctx context.Context) ([]*models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	UpdateAccount(ctx context.Context, id int64, req *models.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) (*models.Account, error)

	// accountID must come from a verified session token
	ChangePassword(ctx context.Context, accountID int64, req *models.ChangePasswordRequest) error

	// phone based reset
	RequestPasswordReset(ctx context.Context, phone string) error
	ConfirmPasswordReset(ctx context.Context, req *models.ResetPasswordRequest) error
}
