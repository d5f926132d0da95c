package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/piresc/accounts/internal/pkg/apperror"
	"github.com/piresc/accounts/internal/pkg/models"
)

const (
	pgUniqueViolation = "23505"
	phoneConstraint   = "users_phone_key"
)

const accountColumns = `id, name, email, phone, address, city, country, dob, gender, password, created_at, updated_at`

// CreateAccount inserts the account and fills in its generated id and creation time
func (r *AccountRepo) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO users (name, email, password, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Phone,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return mapWriteError("failed to create account", err)
	}

	return nil
}

// GetAccountByID retrieves an account by id
func (r *AccountRepo) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetAccountByEmail retrieves an account by email
func (r *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetAccountByPhone retrieves an account by phone
func (r *AccountRepo) GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users WHERE phone = $1`
	return r.getOne(ctx, query, phone)
}

// ListAccounts returns every account ordered by id
func (r *AccountRepo) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM users ORDER BY id`

	accounts := []*models.Account{}
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// UpdateAccount overwrites every profile field and the password hash of account.ID
func (r *AccountRepo) UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		UPDATE users SET
			name = $1, email = $2, password = $3, phone = $4, address = $5,
			city = $6, country = $7, dob = $8, gender = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING ` + accountColumns

	var updated models.Account
	err := r.db.GetContext(ctx, &updated, query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Phone,
		account.Address,
		account.City,
		account.Country,
		account.DOB,
		account.Gender,
		account.ID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, mapWriteError("failed to update account", err)
	}

	return &updated, nil
}

// DeleteAccount removes the account and returns the row as it was
func (r *AccountRepo) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + accountColumns
	return r.getOne(ctx, query, id)
}

// UpdatePasswordByID replaces the password hash of one account
func (r *AccountRepo) UpdatePasswordByID(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	return r.execOne(ctx, query, passwordHash, id)
}

// UpdatePasswordByPhone replaces the password hash of the account owning phone
func (r *AccountRepo) UpdatePasswordByPhone(ctx context.Context, phone, passwordHash string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE phone = $2`
	return r.execOne(ctx, query, passwordHash, phone)
}

func (r *AccountRepo) getOne(ctx context.Context, query string, args ...interface{}) (*models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepo) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// mapWriteError turns unique violations into duplicate kinds and wraps everything else
func mapWriteError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if pgErr.ConstraintName == phoneConstraint {
			return apperror.ErrDuplicatePhone
		}
		return apperror.ErrDuplicateEmail
	}
	return fmt.Errorf("%s: %w", msg, err)
}
