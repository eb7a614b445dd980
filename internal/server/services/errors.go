package services

import (
	"context"
	"errors"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
	"github.com/rjrato/Write-it-V2-Backend/internal/logging"
)

// mapStorageErr converts a storage failure into exactly one error kind from
// the common taxonomy. Sentinels pass through untouched; a deadline expiry
// becomes ErrorStorageTimeout; anything else is logged and reported as
// ErrorInternal so raw driver errors never reach callers.
func mapStorageErr(ctx context.Context, logger logging.Logger, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error(ctx, "storage timeout", "op", op)
		return common.ErrorStorageTimeout
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorDuplicateEmail),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorValidation):
		return err
	default:
		logger.Error(ctx, "storage failure", "op", op, "error", err.Error())
		return common.ErrorInternal
	}
}
