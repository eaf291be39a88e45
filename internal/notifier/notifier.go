// Package notifier drives the periodic storm scan and dispatches
// notifications through a Sink.
package notifier

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/domain"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/format"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/observability"
)

// Sink delivers a rendered notification to a destination channel.
type Sink interface {
	Send(ctx context.Context, channelID, message string) error
}

// NopSink discards notifications. Useful in tests.
type NopSink struct{}

func (NopSink) Send(_ context.Context, _, _ string) error { return nil }

// Config holds the notifier's tuning knobs.
type Config struct {
	ChannelID       string
	Lead            time.Duration // how far ahead of a storm's start to announce it
	NextStormCount  int           // storms per notification, candidate included
	TickInterval    time.Duration
	DispatchTimeout time.Duration // per dispatch attempt
}

// Notifier owns the tick loop. The lastNotified marker is written only by
// the loop goroutine; dispatch runs in its own goroutine per candidate so a
// slow send never delays the next scan.
type Notifier struct {
	dataset  domain.Dataset
	renderer *format.Renderer
	sink     Sink
	recorder Recorder
	clock    clockwork.Clock
	cfg      Config
	logger   *slog.Logger
	metrics  *observability.Metrics

	ready        atomic.Bool
	lastNotified time.Time
}

// New creates a Notifier. Zero Config durations get the design defaults:
// one-minute ticks, ten-second dispatch timeout.
func New(dataset domain.Dataset, renderer *format.Renderer, sink Sink, recorder Recorder, clock clockwork.Clock, cfg Config, logger *slog.Logger, metrics *observability.Metrics) *Notifier {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Minute
	}
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = 10 * time.Second
	}
	if cfg.NextStormCount < 1 {
		cfg.NextStormCount = 3
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Notifier{
		dataset:  dataset,
		renderer: renderer,
		sink:     sink,
		recorder: recorder,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once the tick loop is running, or an error
// describing why the notifier is not yet ready.
func (n *Notifier) CheckReadiness(_ context.Context) error {
	if !n.ready.Load() {
		return errors.New("notifier loop has not started ticking yet")
	}
	return nil
}

// Run blocks on the started barrier (the transport readiness signal), then
// ticks until the context is cancelled. A failed dispatch never aborts the
// loop.
func (n *Notifier) Run(ctx context.Context, started <-chan struct{}) error {
	select {
	case <-ctx.Done():
		return nil
	case <-started:
	}

	n.logger.Info("notifier started",
		"tick_interval", n.cfg.TickInterval,
		"lead", n.cfg.Lead,
		"channel", n.cfg.ChannelID,
	)
	n.metrics.NotifierRunning.Set(1)
	defer n.metrics.NotifierRunning.Set(0)
	n.ready.Store(true)
	defer n.ready.Store(false)

	ticker := n.clock.NewTicker(n.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notifier stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			n.tick(ctx)
		}
	}
}

// tick runs one scan-select-dispatch cycle.
func (n *Notifier) tick(ctx context.Context) {
	n.metrics.Ticks.Inc()
	now := n.clock.Now()

	storms := n.dataset.UpcomingStorms(now)
	if len(storms) == 0 {
		return
	}
	n.logger.Debug("next storm", "start", storms[0].Start, "delta", storms[0].Start.Sub(now))

	i, candidate, ok := domain.NotifyCandidate(storms, now, n.cfg.Lead)
	if !ok {
		return
	}
	if candidate.Start.Equal(n.lastNotified) {
		// Adjacent ticks can both land inside the window; announce once.
		n.logger.Debug("storm already announced", "start", candidate.Start)
		return
	}
	n.lastNotified = candidate.Start

	following := storms[i+1:]
	if limit := n.cfg.NextStormCount - 1; len(following) > limit {
		following = following[:limit]
	}
	message := n.renderer.Notification(candidate, following)

	go n.dispatch(ctx, candidate, message)
}

const (
	dispatchRetries    = 2
	initialBackoff     = 200 * time.Millisecond
	maxDispatchBackoff = 5 * time.Second
)

// dispatch sends one notification with a per-attempt timeout and bounded
// backoff retries, then records the outcome. The candidate is never
// re-announced on a later tick, so exhausting retries means the
// notification is lost.
func (n *Notifier) dispatch(ctx context.Context, candidate domain.WeatherEvent, message string) {
	start := time.Now()
	backoff := initialBackoff

	var err error
	for attempt := 1; attempt <= 1+dispatchRetries; attempt++ {
		err = n.send(ctx, message)
		if err == nil {
			break
		}
		n.logger.Warn("dispatch attempt failed", "attempt", attempt, "error", err)
		if attempt <= dispatchRetries {
			if !sleepWithContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, maxDispatchBackoff)
		}
	}

	outcome := "sent"
	if err != nil {
		outcome = "failed"
		n.metrics.DispatchErrors.Inc()
		n.logger.Error("notification lost", "storm_start", candidate.Start, "error", err)
	} else {
		n.metrics.NotificationsSent.Inc()
		n.logger.Info("notification sent", "storm_start", candidate.Start)
	}
	n.metrics.DispatchDuration.Observe(time.Since(start).Seconds())

	rec := Record{
		EventStart:  candidate.Start,
		Kind:        candidate.Kind.String(),
		LeadMinutes: int(n.cfg.Lead.Minutes()),
		SentAt:      time.Now().UTC(),
		Outcome:     outcome,
	}
	if err := n.recorder.Record(ctx, rec); err != nil {
		n.logger.Warn("audit record failed", "error", err)
	}
}

func (n *Notifier) send(ctx context.Context, message string) error {
	sendCtx, cancel := context.WithTimeout(ctx, n.cfg.DispatchTimeout)
	defer cancel()
	return n.sink.Send(sendCtx, n.cfg.ChannelID, message)
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
