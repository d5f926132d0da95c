package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/accounts/internal/pkg/apperror"
	"github.com/piresc/accounts/internal/pkg/logger"
	"github.com/piresc/accounts/internal/pkg/models"
)

// internal wraps a non-domain failure so it maps to a 500 while keeping its cause for logs
func internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if !apperror.IsInternal(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", apperror.ErrInternal, op, err)
}

// Register hashes the password and stores a new account
func (uc *AccountUC) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	hash, err := uc.passwords.Hash(req.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	account := &models.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if req.Phone != "" {
		phone := req.Phone
		account.Phone = &phone
	}

	if err := uc.accountRepo.CreateAccount(ctx, account); err != nil {
		return nil, internal("create account", err)
	}

	logger.Info("Account registered",
		logger.Int64("user_id", account.ID),
		logger.String("email", account.Email),
	)

	return account, nil
}

// Login checks the credentials and issues a session token.
// Unknown email and wrong password fail the same way.
func (uc *AccountUC) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	account, err := uc.accountRepo.GetAccountByEmail(ctx, req.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, internal("get account by email", err)
	}

	if !uc.passwords.Verify(req.Password, account.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.Issue(account.ID)
	if err != nil {
		return nil, internal("issue token", err)
	}

	return &models.LoginResponse{
		Token:     token,
		AccountID: account.ID,
		ExpiresAt: expiresAt,
	}, nil
}

func (uc *AccountUC) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts, err := uc.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, internal("list accounts", err)
	}
	return accounts, nil
}

func (uc *AccountUC) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := uc.accountRepo.GetAccountByID(ctx, id)
	if err != nil {
		return nil, internal("get account", err)
	}
	return account, nil
}

// UpdateAccount overwrites every profile field of id and re-hashes the supplied password
func (uc *AccountUC) UpdateAccount(ctx context.Context, id int64, req *models.UpdateAccountRequest) (*models.Account, error) {
	hash, err := uc.passwords.Hash(req.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	account := &models.Account{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		DOB:          req.DOB,
		Gender:       req.Gender,
		PasswordHash: hash,
	}

	updated, err := uc.accountRepo.UpdateAccount(ctx, account)
	if err != nil {
		return nil, internal("update account", err)
	}
	return updated, nil
}

func (uc *AccountUC) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	deleted, err := uc.accountRepo.DeleteAccount(ctx, id)
	if err != nil {
		return nil, internal("delete account", err)
	}

	logger.Info("Account deleted", logger.Int64("user_id", id))
	return deleted, nil
}

// ChangePassword replaces the password of accountID after checking the old one
func (uc *AccountUC) ChangePassword(ctx context.Context, accountID int64, req *models.ChangePasswordRequest) error {
	account, err := uc.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return internal("get account", err)
	}

	if !uc.passwords.Verify(req.OldPassword, account.PasswordHash) {
		return apperror.ErrIncorrectOldPassword
	}

	hash, err := uc.passwords.Hash(req.NewPassword)
	if err != nil {
		return internal("hash password", err)
	}

	if err := uc.accountRepo.UpdatePasswordByID(ctx, accountID, hash); err != nil {
		return internal("update password", err)
	}
	return nil
}
