package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
)

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	row := r.db.QueryRowxContext(ctx, query, account.ID, account.Email, account.PasswordHash)
	if err := row.Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		if isUniqueViolation(err, "accounts_email_key") {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	account := &model.Account{}
	if err := r.db.GetContext(ctx, account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE lower(email) = lower($1)
	`
	account := &model.Account{}
	if err := r.db.GetContext(ctx, account, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}
