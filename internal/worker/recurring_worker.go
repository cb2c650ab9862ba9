// Package worker holds background loops that drive use cases on a schedule.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/domain"
)

// Materializer creates the transactions of recurring rules that are due.
type Materializer interface {
	MaterializeDue(ctx context.Context, now time.Time) (int, error)
}

// RecurringWorker periodically materializes due recurring transactions.
type RecurringWorker struct {
	materializer Materializer
	clock        domain.Clock
	interval     time.Duration
	logger       zerolog.Logger
}

// RecurringConfig for RecurringWorker.
type RecurringConfig struct {
	Materializer Materializer
	Clock        domain.Clock
	Interval     time.Duration
	Logger       zerolog.Logger
}

// NewRecurringWorker creates a new RecurringWorker.
func NewRecurringWorker(cfg RecurringConfig) *RecurringWorker {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Clock == nil {
		cfg.Clock = domain.SystemClock{}
	}

	return &RecurringWorker{
		materializer: cfg.Materializer,
		clock:        cfg.Clock,
		interval:     cfg.Interval,
		logger:       cfg.Logger.With().Str("component", "recurring_worker").Logger(),
	}
}

// Start runs until ctx is cancelled. A pass runs immediately and then on every tick.
func (w *RecurringWorker) Start(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("recurring worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("recurring worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce materializes everything due now and returns how many transactions were created.
func (w *RecurringWorker) RunOnce(ctx context.Context) int {
	created, err := w.materializer.MaterializeDue(ctx, w.clock.Now())
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error().Err(err).Msg("recurring materialization failed")
	}

	return created
}
