package users

import (
	"context"

	"github.com/aturkov/scorekeep/internal/server/models"
)

// Repository persists user accounts. Mutating operations rely on the
// database's unique indexes for email/nickname and report collisions as
// common.ErrConflict.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
