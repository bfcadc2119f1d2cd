package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors from the read-only monitoring query to
// AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - context timeouts/cancellations → Timeout/Canceled
//   - undefined table/column, insufficient privilege → Validation
//     (the monitoring role or schema is misconfigured)
//   - connection failures → Unavailable
//
// If the error is not a recognized database error, it returns the original
// error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "database query timed out",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "database query was canceled",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "no matching rows",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return &AppError{
			Code:    ErrCodeUnavailable,
			Message: "database is unreachable",
			Cause:   err,
		}
	}

	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances. The
// reporter only reads, so the interesting classes are schema drift and
// permission problems; anything else is internal.
func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UndefinedTable, pgerrcode.UndefinedColumn, pgerrcode.UndefinedFunction:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "monitoring query does not match the database schema",
			Cause:   pgErr,
		}
	case pgerrcode.InsufficientPrivilege:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "monitoring role lacks read access",
			Cause:   pgErr,
		}
	case pgerrcode.QueryCanceled:
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "database query was canceled by the server",
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "database error",
			Cause:   pgErr,
		}
	}
}
