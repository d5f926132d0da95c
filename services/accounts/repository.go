package accounts

import (
	"context"

	"github.com/piresc/accounts/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/accounts/services/accounts AccountRepo

// AccountRepo persists accounts. Lookups return apperror.ErrNotFound when no row matches
// and writes return apperror.ErrDuplicateEmail or ErrDuplicatePhone on unique violations.
type AccountRepo interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	DeleteAccount(ctx context.Context, id int64) (*models.Account, error)
	UpdatePasswordByID(ctx context.Context, id int64, passwordHash string) error
	UpdatePasswordByPhone(ctx context.Context, phone, passwordHash string) error
}
