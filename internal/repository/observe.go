package repository

import (
	"context"
	"errors"
	"time"

	"github.com/coachhub/coachhub-api/pkg/logger"
	"github.com/coachhub/coachhub-api/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// observe records duration and outcome of a database operation.
// pgx.ErrNoRows is counted as not_found and logged at debug level only.
func observe(ctx context.Context, operation string, start time.Time, err error, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)

	switch {
	case err == nil:
		metrics.RecordDBOperation(operation, "success", duration)
		logger.LogAPICall(ctx, "postgres", operation, "success", duration, fields...)
	case errors.Is(err, pgx.ErrNoRows):
		metrics.RecordDBOperation(operation, "not_found", duration)
	default:
		metrics.RecordDBOperation(operation, "error", duration)
		logger.LogAPICall(ctx, "postgres", operation, "error", duration, append(fields, zap.Error(err))...)
	}
}

// pgErrorCode returns the SQLSTATE of a PostgreSQL error, or ""
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}
