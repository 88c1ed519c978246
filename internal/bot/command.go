package bot

import (
	"context"

	"go.uber.org/zap"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

// Replier sends messages back to the channel a command was invoked from.
type Replier interface {
	SendText(ctx context.Context, text string) error
	SendEmbed(ctx context.Context, embed *airquality.Embed) error
}

// Invocation describes one run of a command.
type Invocation struct {
	ID        string
	Command   string
	Prefix    string
	Args      []string
	ChannelID string
	AuthorID  string

	Reply  Replier
	Logger *zap.Logger
}

// Command is a chat command bound to a name.
type Command interface {
	Name() string
	Description() string
	Usage(prefix string) string
	Run(ctx context.Context, inv *Invocation) error
}

// ErrorHandler is implemented by commands that answer their own failures.
// Commands without it get the router's generic error reply.
type ErrorHandler interface {
	OnError(ctx context.Context, inv *Invocation, err error) error
}

func (inv *Invocation) log() *zap.Logger {
	if inv.Logger == nil {
		return zap.NewNop()
	}
	return inv.Logger
}
