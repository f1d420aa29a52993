package models

import "time"

// ProgressRecord holds the best score a user has achieved in one subject.
// At most one record exists per (UserID, Subject) pair; Score only ever
// increases over the record's lifetime. LastUpdated is refreshed on every
// write that raises the score and left untouched otherwise.
type ProgressRecord struct {
	ID          string
	UserID      string
	Subject     string
	Score       int64
	LastUpdated time.Time
}
