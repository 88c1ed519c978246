package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/airquality-bot/internal/airquality"
	"github.com/i474232898/airquality-bot/internal/metrics"
)

// Message is the platform-neutral view of an incoming chat message.
type Message struct {
	ID          string
	ChannelID   string
	AuthorID    string
	AuthorIsBot bool
	Content     string
}

// Router maps prefixed messages to registered commands.
type Router struct {
	prefix   string
	timeout  time.Duration
	commands map[string]Command
	logger   *zap.Logger
}

// NewRouter returns a router with the built-in help command registered.
// A non-positive timeout leaves the caller's context untouched.
func NewRouter(prefix string, timeout time.Duration, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		prefix:   prefix,
		timeout:  timeout,
		commands: make(map[string]Command),
		logger:   logger.Named("router"),
	}
	r.Register(&helpCommand{router: r})
	return r
}

// Prefix returns the command prefix messages must start with.
func (r *Router) Prefix() string {
	return r.prefix
}

// Register binds cmd to its name, replacing any command already bound there.
func (r *Router) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Commands returns the registered commands sorted by name.
func (r *Router) Commands() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Dispatch runs the command addressed by msg, if any. It reports whether a
// command was matched. Command failures are answered through reply and never
// returned.
func (r *Router) Dispatch(ctx context.Context, msg Message, reply Replier) bool {
	if msg.AuthorIsBot || !strings.HasPrefix(msg.Content, r.prefix) {
		return false
	}

	name, rest := splitCommand(strings.TrimPrefix(msg.Content, r.prefix))
	if name == "" {
		return false
	}
	cmd, ok := r.commands[name]
	if !ok {
		r.logger.Debug("unknown command", zap.String("command", name), zap.String("channel_id", msg.ChannelID))
		return false
	}

	inv := &Invocation{
		ID:        uuid.NewString(),
		Command:   name,
		Prefix:    r.prefix,
		ChannelID: msg.ChannelID,
		AuthorID:  msg.AuthorID,
		Reply:     reply,
	}
	inv.Logger = r.logger.With(
		zap.String("invocation_id", inv.ID),
		zap.String("command", name),
		zap.String("channel_id", msg.ChannelID),
		zap.String("author_id", msg.AuthorID),
	)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	started := time.Now()
	var err error
	inv.Args, err = splitArgs(rest)
	if err != nil {
		err = &ArgError{Kind: ArgInvalid, Err: err}
	} else {
		err = r.run(ctx, cmd, inv)
	}

	outcome := "ok"
	if err != nil {
		outcome = errorOutcome(err)
		inv.Logger.Info("command failed", zap.String("outcome", outcome), zap.Error(err))
		if herr := r.handleError(ctx, cmd, inv, err); herr != nil {
			inv.Logger.Error("error handler failed", zap.Error(herr))
		}
	} else {
		inv.Logger.Debug("command completed", zap.Duration("took", time.Since(started)))
	}
	metrics.CommandsTotal.WithLabelValues(name, outcome).Inc()
	return true
}

func (r *Router) run(ctx context.Context, cmd Command, inv *Invocation) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("command %s panicked: %v", cmd.Name(), p)
		}
	}()
	return cmd.Run(ctx, inv)
}

func (r *Router) handleError(ctx context.Context, cmd Command, inv *Invocation, err error) (herr error) {
	defer func() {
		if p := recover(); p != nil {
			herr = fmt.Errorf("error handler for %s panicked: %v", cmd.Name(), p)
		}
	}()
	if h, ok := cmd.(ErrorHandler); ok {
		return h.OnError(ctx, inv, err)
	}
	return sendGenericError(ctx, inv)
}

// splitCommand separates the command name from the raw argument text.
// A name must follow the prefix directly.
func splitCommand(s string) (name, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func errorOutcome(err error) string {
	var argErr *ArgError
	if errors.As(err, &argErr) {
		return argErr.Kind.String()
	}
	return "error"
}

// helpCommand lists the registered commands.
type helpCommand struct {
	router *Router
}

func (h *helpCommand) Name() string { return "help" }

func (h *helpCommand) Description() string { return "Show the available commands." }

func (h *helpCommand) Usage(prefix string) string { return "`" + prefix + "help`" }

func (h *helpCommand) Run(ctx context.Context, inv *Invocation) error {
	var b strings.Builder
	for _, cmd := range h.router.Commands() {
		fmt.Fprintf(&b, "%s\n%s\n", cmd.Usage(inv.Prefix), cmd.Description())
	}
	return inv.Reply.SendEmbed(ctx, &airquality.Embed{
		Title:       "Commands",
		Description: strings.TrimSpace(b.String()),
		Color:       airquality.ColorBlue,
	})
}
