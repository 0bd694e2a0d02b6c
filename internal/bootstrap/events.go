package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/dotbio/dotbio-api/internal/config"
	"github.com/dotbio/dotbio-api/internal/discord"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/livefeed"
	"github.com/dotbio/dotbio-api/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus
func InitializeEventSystem() event.Bus {
	return event.NewMemoryBus()
}

// RegisterSubscribers wires every event consumer onto the bus: the
// Prometheus collector, the live feed cache and, when configured, the
// Discord win announcer. feedCache may be nil when Redis is not
// configured.
func RegisterSubscribers(cfg *config.Config, bus event.Bus, feedCache livefeed.Cache) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if feedCache != nil {
		sub := livefeed.NewSubscriber(feedCache)
		if err := sub.Register(bus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedRegisterFeed, err)
		}
		slog.Info(LogMsgFeedSubscriberRegistered)
	}

	if cfg.DiscordToken == "" {
		slog.Info(LogMsgAnnouncerDisabled)
		return nil
	}

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterAnnouncer, err)
	}
	announcer := discord.NewAnnouncer(session, cfg.DiscordChannelID, cfg.DiscordMinWinValue)
	if err := announcer.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterAnnouncer, err)
	}
	slog.Info(LogMsgAnnouncerRegistered, "channel_id", cfg.DiscordChannelID, "min_win_value", cfg.DiscordMinWinValue)

	return nil
}
