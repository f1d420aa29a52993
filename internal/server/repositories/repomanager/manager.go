package repomanager

import (
	"context"
	"database/sql"

	"github.com/aturkov/scorekeep/internal/dbx"
	"github.com/aturkov/scorekeep/internal/server/repositories/progress"
	"github.com/aturkov/scorekeep/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX. Passing a *sql.Tx
// makes several repositories share one transaction, which is how the user
// deletion cascade stays atomic.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Progress(db dbx.DBTX) progress.Repository
}
