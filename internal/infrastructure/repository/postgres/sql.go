package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/cricket-fantasy/internal/platform/storage"
)

const defaultLockTimeout = 3 * time.Second

// PostgreSQL codes a retrying caller can recover from.
const (
	codeUniqueViolation      = "23505"
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// storeErr wraps a driver error with the operation and tags retryable
// PostgreSQL failures with storage.ErrConflict.
func storeErr(err error, op string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation, codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected:
			return crerr.WithStack(fmt.Errorf("%w: %s (pq %s): %w", storage.ErrConflict, op, pqErr.Code, err))
		}
	}
	return crerr.Wrap(err, op)
}

func notFound(format string, args ...any) error {
	return crerr.Wrapf(storage.ErrNotFound, format, args...)
}

// withTx runs fn in one transaction with lock_timeout applied, so a writer
// blocked on a row lock fails fast instead of queueing.
func withTx(ctx context.Context, db *sqlx.DB, lockTimeout time.Duration, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr(err, "begin tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", lockTimeout.Milliseconds())); err != nil {
		return storeErr(err, "set lock timeout")
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeErr(err, "commit tx")
	}
	return nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
