// Package progress provides the PostgreSQL-backed repository for best-score
// records keyed by (user, subject).
package progress

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

// Submit merges a score submission into the (user_id, subject) row as a
// single conditional upsert, so concurrent submissions serialize on the row
// and the stored score is always the maximum ever submitted:
//
//   - no row yet: insert with the submitted score and a fresh timestamp;
//   - submitted score higher: raise the score and refresh last_updated;
//   - submitted score equal or lower: leave the row untouched, timestamp
//     included.
//
// The no-op branch updates nothing, so the statement returns no row; the
// current row is then read back so callers always get the post-write state.
// A dangling user_id surfaces as common.ErrUnknownUser via the FK constraint.
func (r *PostgresRepository) Submit(ctx context.Context, rec *models.ProgressRecord) (*models.ProgressRecord, error) {
	query := `
		INSERT INTO progress (id, user_id, subject, score, last_updated)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, subject)
		DO UPDATE SET
			score = EXCLUDED.score,
			last_updated = CURRENT_TIMESTAMP
			WHERE progress.score < EXCLUDED.score
		RETURNING id, score, last_updated
	`
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.UserID, rec.Subject, rec.Score).Scan(&rec.ID, &rec.Score, &rec.LastUpdated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Best score retained; report the stored record unchanged.
			return r.Get(ctx, rec.UserID, rec.Subject)
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrUnknownUser
		}
		if dbx.IsConnectionError(err) {
			return nil, common.ErrStorageUnavailable
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

// Get returns the record for (userID, subject), or common.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID, subject string) (*models.ProgressRecord, error) {
	query := `
		SELECT id, score, last_updated
		FROM progress
		WHERE user_id = $1 AND subject = $2
	`
	rec := &models.ProgressRecord{UserID: userID, Subject: subject}
	if err := r.db.QueryRowContext(ctx, query, userID, subject).Scan(&rec.ID, &rec.Score, &rec.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if dbx.IsConnectionError(err) {
			return nil, common.ErrStorageUnavailable
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// ListByUser returns all records owned by userID, ordered by subject.
// A user with no submissions yields an empty slice, not an error.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ProgressRecord, error) {
	query := `
		SELECT id, subject, score, last_updated
		FROM progress
		WHERE user_id = $1
		ORDER BY subject
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		if dbx.IsConnectionError(err) {
			return nil, common.ErrStorageUnavailable
		}
		return nil, fmt.Errorf("failed to select progress: %w", err)
	}
	defer rows.Close()

	result := []*models.ProgressRecord{}
	for rows.Next() {
		item := models.ProgressRecord{UserID: userID}
		if err := rows.Scan(&item.ID, &item.Subject, &item.Score, &item.LastUpdated); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByUser removes every record owned by userID. Zero rows is fine: the
// user may never have submitted a score.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM progress
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		if dbx.IsConnectionError(err) {
			return common.ErrStorageUnavailable
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
