// Package users provides the PostgreSQL-backed repository for user accounts.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aturkov/scorekeep/internal/common"
	"github.com/aturkov/scorekeep/internal/dbx"
	"github.com/aturkov/scorekeep/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user row. A unique-index violation on email or
// nickname is reported as common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, full_name, email, nickname, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FullName, user.Email, user.Nickname, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		if dbx.IsConnectionError(err) {
			return nil, common.ErrStorageUnavailable
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByID returns the user with the given id, or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, full_name, email, nickname, password_hash, created_at FROM users
		 WHERE id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByNickname returns the user with the given nickname, or common.ErrNotFound.
// Used for login-style lookups; nicknames are matched case-sensitively.
func (r *PostgresRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	query :=
		`SELECT id, full_name, email, nickname, password_hash, created_at FROM users
		 WHERE nickname = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, nickname))
}

// Update rewrites the mutable profile fields of an existing user. Collisions
// with another user's email/nickname surface as common.ErrConflict; an
// unknown id as common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET full_name = $2, email = $3, nickname = $4
		 WHERE id = $1
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.FullName, user.Email, user.Nickname).Scan(&user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		if dbx.IsConnectionError(err) {
			return nil, common.ErrStorageUnavailable
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// Delete removes the user row. The progress table declares ON DELETE CASCADE,
// so the user's progress rows go away in the same statement.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM users
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if dbx.IsConnectionError(err) {
			return common.ErrStorageUnavailable
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Nickname, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if dbx.IsConnectionError(err) {
			return nil, common.ErrStorageUnavailable
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
