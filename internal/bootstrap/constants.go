package bootstrap

// =============================================================================
// Schema Bootstrap Messages
// =============================================================================

const (
	LogMsgApplyingSchema = "Applying database schema..."
	LogMsgSchemaApplied  = "Database schema applied"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgFeedSubscriberRegistered   = "Live feed subscriber registered"
	LogMsgAnnouncerRegistered        = "Discord win announcer registered"
	LogMsgAnnouncerDisabled          = "Discord announcer disabled, no token configured"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedRegisterFeed         = "failed to register live feed subscriber"
	ErrMsgFailedRegisterAnnouncer    = "failed to register Discord announcer"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgRedisCloseFailed     = "Redis client close failed"
)
