// Package query answers the read-only chat commands over the immutable
// dataset. Operations are safe to call concurrently with each other and
// with the notifier loop.
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/domain"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/format"
)

const (
	// DefaultNextCount is used when the next command has no argument.
	DefaultNextCount = 3
	// MaxNextCount caps the next command's argument.
	MaxNextCount = 10

	// nearFutureCount is how many events the weather command shows,
	// the active one included.
	nearFutureCount = 3
)

// ErrInvalidCount reports an unusable next-command argument. It must reach
// the user as an explicit reply, never be silently dropped.
var ErrInvalidCount = errors.New("count must be a positive integer")

// Service resolves commands against the dataset.
type Service struct {
	dataset   domain.Dataset
	renderer  *format.Renderer
	displayTZ *time.Location
	clock     clockwork.Clock
	logger    *slog.Logger
}

func New(dataset domain.Dataset, renderer *format.Renderer, displayTZ *time.Location, clock clockwork.Clock, logger *slog.Logger) *Service {
	return &Service{
		dataset:   dataset,
		renderer:  renderer,
		displayTZ: displayTZ,
		clock:     clock,
		logger:    logger,
	}
}

// Today lists all storms whose start falls on the current calendar date in
// the display timezone.
func (s *Service) Today() string {
	storms := s.dataset.TodayStorms(s.clock.Now(), s.displayTZ)
	return s.renderer.TodayReply(storms)
}

// Next lists the next n upcoming storms. An empty arg means the default
// count; a valid arg above the cap is clamped; anything unparsable or
// non-positive returns ErrInvalidCount.
func (s *Service) Next(arg string) (string, error) {
	n := DefaultNextCount
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			s.logger.Debug("rejecting next argument", "arg", arg)
			return "", fmt.Errorf("%w: %q", ErrInvalidCount, arg)
		}
		n = min(v, MaxNextCount)
	}

	storms := s.dataset.UpcomingStorms(s.clock.Now())
	exhausted := len(storms) < n
	if len(storms) > n {
		storms = storms[:n]
	}
	return s.renderer.NextReply(n, storms, exhausted), nil
}

// Weather shows the currently active event and its two successors,
// whatever their kind, or the no-data reply when nothing is active.
func (s *Service) Weather() string {
	i, _, ok := s.dataset.ActiveEvent(s.clock.Now())
	if !ok {
		return s.renderer.WeatherReply(nil)
	}
	end := min(i+nearFutureCount, len(s.dataset))
	return s.renderer.WeatherReply(s.dataset[i:end])
}

// InvalidCountReply renders the user-visible reply for ErrInvalidCount.
func (s *Service) InvalidCountReply(arg string) string {
	return s.renderer.InvalidCountReply(arg)
}
