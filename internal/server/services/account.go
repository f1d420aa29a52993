// Package services contains server-side business logic. This file implements
// AccountService: registration, credential checks, profile updates, and
// account deletion with its progress cascade.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aturkov/scorekeep/internal/common"
	"github.com/aturkov/scorekeep/internal/dbx"
	"github.com/aturkov/scorekeep/internal/server/auth"
	"github.com/aturkov/scorekeep/internal/server/config"
	"github.com/aturkov/scorekeep/internal/server/models"
	"github.com/aturkov/scorekeep/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptGenerateFromPassword is a seam for testing hash failures.
var bcryptGenerateFromPassword = bcrypt.GenerateFromPassword

// ProfileUpdate carries a partial profile change. Nil fields stay unchanged.
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Nickname *string
}

// AccountService owns user identity records. Uniqueness of email and nickname
// is enforced by the storage layer's unique indexes; this service only
// translates and validates.
type AccountService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	sessionTokenValidityDuration time.Duration
}

// NewAccountService constructs an AccountService using repositories and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		sessionTokenValidityDuration: cfg.SessionTokenValidityDuration,
	}
}

// CreateUser creates an account from an already-hashed password. Every field
// is required; duplicates of email or nickname yield common.ErrConflict.
// The returned user carries a freshly assigned, never-reused id.
func (s *AccountService) CreateUser(ctx context.Context, fullName, email, nickname, passwordHash string) (*models.User, error) {
	// Trim before validating so whitespace-only values count as empty.
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if fullName == "" || email == "" || nickname == "" || passwordHash == "" {
		return nil, common.ErrInvalidInput
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: passwordHash,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Register hashes the plaintext password with bcrypt and creates the account.
func (s *AccountService) Register(ctx context.Context, fullName, email, nickname, password string) (*models.User, error) {
	if password == "" {
		return nil, common.ErrInvalidInput
	}
	hash, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}
	return s.CreateUser(ctx, fullName, email, nickname, string(hash))
}

// Login verifies nickname/password and, on success, returns the user and a
// signed session token. Unknown nickname and wrong password are both reported
// as common.ErrUnauthorized so the caller cannot enumerate accounts.
func (s *AccountService) Login(ctx context.Context, nickname, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", common.ErrInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.sessionTokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return user, token, nil
}

// GetUserByID returns the user with the given id, or common.ErrNotFound.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// GetUserByNickname returns the user with the given nickname, or
// common.ErrNotFound.
func (s *AccountService) GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByNickname(ctx, nickname)
}

// UpdateProfile applies a partial profile change. The read-merge-write runs
// in one transaction; colliding email/nickname values surface as
// common.ErrConflict from the unique indexes, so concurrent updates cannot
// slip past the check.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if upd.FullName != nil {
			user.FullName = strings.TrimSpace(*upd.FullName)
		}
		if upd.Email != nil {
			user.Email = strings.TrimSpace(*upd.Email)
		}
		if upd.Nickname != nil {
			user.Nickname = strings.TrimSpace(*upd.Nickname)
		}
		if user.FullName == "" || user.Email == "" || user.Nickname == "" {
			return common.ErrInvalidInput
		}

		updated, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes the account and all of its progress records in one
// transaction. The progress delete runs explicitly even though the schema
// declares ON DELETE CASCADE, so the cascade holds on storage backends
// without native cascading deletes.
func (s *AccountService) DeleteUser(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Progress(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
}
