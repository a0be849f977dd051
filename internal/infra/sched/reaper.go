// File: internal/infra/sched/reaper.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-stars-store/internal/domain/ports/repository"
	"telegram-stars-store/internal/infra/metrics"
)

// DonationReaper periodically removes pending donation intents that were
// staged but never paid. This covers users who got an invoice and walked
// away; their confirmation can no longer arrive once the invoice is stale.
type DonationReaper struct {
	interval  time.Duration
	ttl       time.Duration
	donations repository.PendingDonationRepository
	log       *zerolog.Logger
}

func NewDonationReaper(interval, ttl time.Duration, donations repository.PendingDonationRepository, logger *zerolog.Logger) *DonationReaper {
	compLog := logger.With().Str("component", "DonationReaper").Logger()
	return &DonationReaper{
		interval:  interval,
		ttl:       ttl,
		donations: donations,
		log:       &compLog,
	}
}

func (w *DonationReaper) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Dur("ttl", w.ttl).Msg("Starting donation reaper")
	// Run once on startup, then on every tick
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping donation reaper")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *DonationReaper) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-w.ttl)
	n, err := w.donations.DeleteOlderThan(ctx, repository.NoTX, cutoff)
	if err != nil {
		w.log.Error().Err(err).Msg("reap pending donations")
		return
	}
	if n > 0 {
		metrics.AddDonationsReaped(n)
		w.log.Info().Int64("count", n).Time("cutoff", cutoff).Msg("abandoned donation intents removed")
	}
}
