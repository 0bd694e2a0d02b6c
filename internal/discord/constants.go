package discord

// Log messages for win announcements
const (
	LogMsgAnnounceSent   = "Win announcement sent"
	LogMsgAnnounceFailed = "Failed to send win announcement"
)
