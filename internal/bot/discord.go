package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

const discordIntents = discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// Discord connects a Router to a Discord gateway session.
type Discord struct {
	session *discordgo.Session
	router  *Router
	logger  *zap.Logger

	// ctx is the parent of every invocation started by the gateway.
	ctx context.Context
}

// NewDiscord prepares a bot session for token. Call Open to connect.
func NewDiscord(token string, router *Router, logger *zap.Logger) (*Discord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordIntents

	d := &Discord{
		session: session,
		router:  router,
		logger:  logger.Named("discord"),
		ctx:     context.Background(),
	}
	session.AddHandler(d.onReady)
	session.AddHandler(d.onMessageCreate)
	return d, nil
}

// Open connects to the gateway. Invocations inherit ctx and are cancelled with it.
func (d *Discord) Open(ctx context.Context) error {
	d.ctx = ctx
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (d *Discord) Close() error {
	return d.session.Close()
}

// SetStatus shows text as the bot's "Watching" activity.
func (d *Discord) SetStatus(text string) error {
	return d.session.UpdateWatchStatus(0, text)
}

func (d *Discord) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	d.logger.Info("connected to discord",
		zap.String("user", r.User.String()),
		zap.Int("guilds", len(r.Guilds)),
	)
}

func (d *Discord) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	msg := Message{
		ID:          m.ID,
		ChannelID:   m.ChannelID,
		AuthorID:    m.Author.ID,
		AuthorIsBot: m.Author.Bot,
		Content:     m.Content,
	}
	d.router.Dispatch(d.ctx, msg, &channelReplier{session: d.session, channelID: m.ChannelID})
}

// channelReplier sends replies to one channel.
type channelReplier struct {
	session   *discordgo.Session
	channelID string
}

func (c *channelReplier) SendText(ctx context.Context, text string) error {
	_, err := c.session.ChannelMessageSend(c.channelID, text, discordgo.WithContext(ctx))
	return err
}

func (c *channelReplier) SendEmbed(ctx context.Context, embed *airquality.Embed) error {
	_, err := c.session.ChannelMessageSendEmbed(c.channelID, toDiscordEmbed(embed), discordgo.WithContext(ctx))
	return err
}

func toDiscordEmbed(e *airquality.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return out
}
