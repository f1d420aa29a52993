package services

import (
	"context"
	"database/sql"

	"github.com/aturkov/scorekeep/internal/common"
	"github.com/aturkov/scorekeep/internal/server/models"
	"github.com/aturkov/scorekeep/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ProgressService owns per-(user, subject) best-score records. The single
// real invariant lives here and in the repository's conditional upsert: a
// stored score never decreases, and a submission that doesn't raise it
// leaves the record untouched.
type ProgressService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProgressService constructs a ProgressService over the given repositories.
func NewProgressService(db *sql.DB, m repomanager.RepositoryManager) *ProgressService {
	return &ProgressService{db: db, repomanager: m}
}

// SubmitScore merges a score submission for (userID, subject) and returns
// the post-write record. Negative scores and empty subjects are rejected
// with common.ErrInvalidInput; a userID that references no existing user
// yields common.ErrUnknownUser.
func (s *ProgressService) SubmitScore(ctx context.Context, userID, subject string, score int64) (*models.ProgressRecord, error) {
	if subject == "" || score < 0 {
		return nil, common.ErrInvalidInput
	}
	if userID == "" {
		return nil, common.ErrUnknownUser
	}

	rec := &models.ProgressRecord{
		ID:      uuid.NewString(),
		UserID:  userID,
		Subject: subject,
		Score:   score,
	}
	return s.repomanager.Progress(s.db).Submit(ctx, rec)
}

// GetProgress returns the record for (userID, subject), or common.ErrNotFound.
func (s *ProgressService) GetProgress(ctx context.Context, userID, subject string) (*models.ProgressRecord, error) {
	return s.repomanager.Progress(s.db).Get(ctx, userID, subject)
}

// ListProgress returns all of userID's records ordered by subject. A user
// with no submissions gets an empty slice, not an error.
func (s *ProgressService) ListProgress(ctx context.Context, userID string) ([]*models.ProgressRecord, error) {
	return s.repomanager.Progress(s.db).ListByUser(ctx, userID)
}
