package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/logger"
)

// Embed colors per rarity, defaulting to Discord Blurple
var rarityColors = map[string]int{
	"common":    0x95A5A6, // Gray
	"uncommon":  0x2ECC71, // Green
	"rare":      0x3498DB, // Blue
	"epic":      0x9B59B6, // Purple
	"legendary": 0xFFD700, // Gold
}

const defaultEmbedColor = 0x5865F2 // Discord Blurple

// messageSender is the slice of discordgo.Session the announcer needs
type messageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts big case wins to a Discord channel
type Announcer struct {
	session     messageSender
	channelID   string
	minWinValue int64
}

// NewAnnouncer creates an announcer from an established Discord session.
// Wins below minWinValue are not announced.
func NewAnnouncer(session messageSender, channelID string, minWinValue int64) *Announcer {
	return &Announcer{
		session:     session,
		channelID:   channelID,
		minWinValue: minWinValue,
	}
}

// NewSession opens a Discord session for the given bot token
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return s, nil
}

// Register subscribes to case opened events
func (a *Announcer) Register(bus event.Bus) error {
	bus.Subscribe(event.CaseOpened, a.HandleEvent)
	return nil
}

// HandleEvent announces qualifying wins. Send failures are logged and
// swallowed so Discord outages never affect the opening flow.
func (a *Announcer) HandleEvent(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(domain.CaseOpenedPayload)
	if !ok {
		return nil
	}
	if payload.ItemValue < a.minWinValue {
		return nil
	}

	log := logger.FromContext(ctx)

	if _, err := a.session.ChannelMessageSendEmbed(a.channelID, winEmbed(payload)); err != nil {
		log.Error(LogMsgAnnounceFailed, "error", err, "item", payload.ItemName)
		return nil
	}

	log.Info(LogMsgAnnounceSent, "item", payload.ItemName, "value", payload.ItemValue)
	return nil
}

func winEmbed(payload domain.CaseOpenedPayload) *discordgo.MessageEmbed {
	color, ok := rarityColors[payload.Rarity]
	if !ok {
		color = defaultEmbedColor
	}

	return &discordgo.MessageEmbed{
		Title:       "Big Win!",
		Description: fmt.Sprintf("**%s** pulled **%s** from **%s**!", payload.DisplayName, payload.ItemName, payload.CaseName),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Rarity",
				Value:  payload.Rarity,
				Inline: true,
			},
			{
				Name:   "Value",
				Value:  fmt.Sprintf("%d UC", payload.ItemValue),
				Inline: true,
			},
		},
		Timestamp: time.Unix(payload.Timestamp, 0).UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Case Openings",
		},
	}
}
