// Package discord connects the bot to the Discord gateway: it dispatches
// chat commands to the query service and implements the notifier's Sink.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/observability"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/query"
)

// commandPrefix starts every bot command, e.g. "s!today".
const commandPrefix = "s!"

// Adapter wraps a discordgo session.
type Adapter struct {
	session *discordgo.Session
	queries *query.Service
	logger  *slog.Logger
	metrics *observability.Metrics

	ready     chan struct{}
	readyOnce sync.Once
}

// New builds the adapter and registers its gateway handlers. The session is
// not opened until Open is called.
func New(token string, queries *query.Service, logger *slog.Logger, metrics *observability.Metrics) (*Adapter, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	a := &Adapter{
		session: session,
		queries: queries,
		logger:  logger,
		metrics: metrics,
		ready:   make(chan struct{}),
	}
	session.AddHandler(a.onReady)
	session.AddHandler(a.onMessage)
	return a, nil
}

// Open connects to the gateway.
func (a *Adapter) Open() error {
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (a *Adapter) Close() error {
	return a.session.Close()
}

// Ready is closed once the gateway reports READY. The notifier loop gates
// its first tick on this channel.
func (a *Adapter) Ready() <-chan struct{} {
	return a.ready
}

// Send implements notifier.Sink.
func (a *Adapter) Send(ctx context.Context, channelID, message string) error {
	_, err := a.session.ChannelMessageSend(channelID, message, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}

func (a *Adapter) onReady(_ *discordgo.Session, _ *discordgo.Ready) {
	a.readyOnce.Do(func() {
		a.logger.Info("discord gateway ready")
		close(a.ready)
	})
}

func (a *Adapter) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author != nil && m.Author.Bot {
		return
	}
	name, arg, ok := parseCommand(m.Content)
	if !ok {
		return
	}

	reply, outcome := a.handle(name, arg)
	if reply == "" {
		return // unrecognized command
	}
	a.metrics.Commands.WithLabelValues(name, outcome).Inc()

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		a.logger.Error("command reply failed", "command", name, "error", err)
	}
}

// handle resolves a command to its reply text and metric outcome. An empty
// reply means the command is not ours.
func (a *Adapter) handle(name, arg string) (string, string) {
	switch name {
	case "today":
		return a.queries.Today(), "ok"
	case "next":
		reply, err := a.queries.Next(arg)
		if errors.Is(err, query.ErrInvalidCount) {
			return a.queries.InvalidCountReply(arg), "invalid"
		}
		return reply, "ok"
	case "weather":
		return a.queries.Weather(), "ok"
	default:
		return "", ""
	}
}

// parseCommand splits "s!next 5" into ("next", "5"). ok is false for
// messages that do not carry the command prefix.
func parseCommand(content string) (name, arg string, ok bool) {
	rest, found := strings.CutPrefix(content, commandPrefix)
	if !found {
		return "", "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", "", false
	}
	name = fields[0]
	if len(fields) > 1 {
		arg = fields[1]
	}
	return name, arg, true
}
