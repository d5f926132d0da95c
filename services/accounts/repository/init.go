package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/piresc/accounts/internal/pkg/models"
)

// AccountRepo implements accounts.AccountRepo on PostgreSQL
type AccountRepo struct {
	db  *sqlx.DB
	cfg *models.Config
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(cfg *models.Config, db *sqlx.DB) *AccountRepo {
	return &AccountRepo{
		db:  db,
		cfg: cfg,
	}
}
