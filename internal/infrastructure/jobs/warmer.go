package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	// DefaultWarmSchedule refreshes the catalog as often as it expires.
	DefaultWarmSchedule = "@every 5m"
	refreshTimeout      = 30 * time.Second
)

// Refresher reloads cached data. The catalog service satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Warmer keeps the public catalog cache hot so home page visitors never pay
// for a miss.
type Warmer struct {
	cron     *cron.Cron
	target   Refresher
	schedule string
	log      zerolog.Logger
}

func NewWarmer(target Refresher, schedule string, log zerolog.Logger) *Warmer {
	if schedule == "" {
		schedule = DefaultWarmSchedule
	}
	return &Warmer{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		target:   target,
		schedule: schedule,
		log:      log.With().Str("component", "warmer").Logger(),
	}
}

// Start runs one refresh immediately, then on the schedule.
func (w *Warmer) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return fmt.Errorf("warmer schedule %q: %w", w.schedule, err)
	}
	go w.run()
	w.cron.Start()
	w.log.Info().Str("schedule", w.schedule).Msg("catalog warmer started")
	return nil
}

// Stop waits for a running refresh, up to ctx.
func (w *Warmer) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		w.log.Warn().Msg("catalog warmer stop timed out")
	}
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	if err := w.target.Refresh(ctx); err != nil {
		w.log.Error().Err(err).Msg("catalog refresh failed")
		return
	}
	w.log.Debug().Dur("took", time.Since(start)).Msg("catalog refreshed")
}
