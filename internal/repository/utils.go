package repository

import (
	"context"

	"github.com/dotbio/dotbio-api/internal/logger"
)

// SafeRollback rolls back a transaction and logs any failure.
// Implementations treat rollback-after-commit as a no-op, so this is safe
// to defer unconditionally.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
