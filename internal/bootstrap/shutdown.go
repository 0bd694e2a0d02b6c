package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dotbio/dotbio-api/internal/database"
	"github.com/dotbio/dotbio-api/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server      *server.Server
	DBPool      database.Pool
	RedisClient *redis.Client
}

// GracefulShutdown performs graceful shutdown of all application components.
// The server stops first so no new requests arrive while the stores close
// underneath them. Errors during shutdown are logged but do not stop the
// shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.RedisClient != nil {
		if err := components.RedisClient.Close(); err != nil {
			slog.Error(LogMsgRedisCloseFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
