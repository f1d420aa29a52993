package dbx

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate into domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	// SQLSTATE class 08 covers connection exceptions (connection refused,
	// dropped, failed during statement execution).
	connectionExceptionClass = "08"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Repositories map this onto the Conflict error kind so the
// database index, not an application-level check, stays the source of truth
// for uniqueness under concurrent writes.
func IsUniqueViolation(err error) bool {
	return pgErrCode(err) == uniqueViolation
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation, i.e. a write referencing a row that does not exist.
func IsForeignKeyViolation(err error) bool {
	return pgErrCode(err) == foreignKeyViolation
}

// IsConnectionError reports whether err signals a transient connection
// failure rather than a statement-level problem. Repositories map this onto
// the StorageUnavailable error kind so callers know a retry may succeed.
func IsConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	return strings.HasPrefix(pgErrCode(err), connectionExceptionClass)
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
