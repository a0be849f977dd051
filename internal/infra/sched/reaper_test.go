// File: internal/infra/sched/reaper_test.go
package sched

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

type stubDonationRepo struct {
	cutoff  time.Time
	deleted int64
}

func (s *stubDonationRepo) Insert(ctx context.Context, _ repository.Tx, d *model.PendingDonation) error {
	return nil
}

func (s *stubDonationRepo) FindByID(ctx context.Context, _ repository.Tx, id int64) (*model.PendingDonation, error) {
	return nil, nil
}

func (s *stubDonationRepo) Delete(ctx context.Context, _ repository.Tx, id int64) error { return nil }

func (s *stubDonationRepo) DeleteOlderThan(ctx context.Context, _ repository.Tx, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.deleted, nil
}

func TestDonationReaper_SweepUsesTTLCutoff(t *testing.T) {
	logger := zerolog.Nop()
	repo := &stubDonationRepo{deleted: 3}
	w := NewDonationReaper(time.Hour, 24*time.Hour, repo, &logger)

	before := time.Now().UTC().Add(-24 * time.Hour)
	w.sweep(context.Background())
	after := time.Now().UTC().Add(-24 * time.Hour)

	if repo.cutoff.Before(before) || repo.cutoff.After(after) {
		t.Fatalf("cutoff %v not within [%v, %v]", repo.cutoff, before, after)
	}
}

func TestDonationReaper_StopsOnContextCancel(t *testing.T) {
	logger := zerolog.Nop()
	w := NewDonationReaper(time.Millisecond, time.Hour, &stubDonationRepo{}, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
