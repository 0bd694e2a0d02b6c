package livefeed

// Log messages for cache interactions
const (
	LogMsgCacheReadFailed = "live feed cache read failed, falling back to database"
	LogMsgCacheWarmFailed = "failed to warm live feed cache"
	LogMsgCachePushFailed = "failed to push entry to live feed cache"
)
