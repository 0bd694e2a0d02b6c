package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dotbio/dotbio-api/internal/database/schema"
)

// ApplySchema applies the embedded schema SQL. All statements are
// IF NOT EXISTS so re-running on an existing database is a no-op.
func ApplySchema(ctx context.Context, dbPool *pgxpool.Pool) error {
	slog.Info(LogMsgApplyingSchema)

	if _, err := dbPool.Exec(ctx, schema.SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	slog.Info(LogMsgSchemaApplied)
	return nil
}
