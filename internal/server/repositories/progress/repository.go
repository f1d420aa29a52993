package progress

import (
	"context"

	"github.com/aturkov/scorekeep/internal/server/models"
)

// Repository persists per-(user, subject) best-score records.
type Repository interface {
	// Submit applies the monotonic-max merge for (rec.UserID, rec.Subject)
	// and returns the post-write record state. See PostgresRepository.Submit.
	Submit(ctx context.Context, rec *models.ProgressRecord) (*models.ProgressRecord, error)
	Get(ctx context.Context, userID, subject string) (*models.ProgressRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ProgressRecord, error)
	// DeleteByUser removes every record owned by userID. Run inside the
	// same transaction as the owning user's deletion.
	DeleteByUser(ctx context.Context, userID string) error
}
