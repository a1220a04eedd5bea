package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/jmoiron/sqlx"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, name, institution, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.Institution,
		account.CreatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateEmail
	}

	return err
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.get(ctx, `SELECT id, email, password_hash, name, institution, created_at FROM accounts WHERE email = ?`, email)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.get(ctx, `SELECT id, email, password_hash, name, institution, created_at FROM accounts WHERE id = ?`, id)
}

func (r *accountRepository) get(ctx context.Context, query string, arg any) (*models.Account, error) {
	var account models.Account

	err := r.db.GetContext(ctx, &account, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}
