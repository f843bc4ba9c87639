package app

import (
	"context"
	"testing"
	"time"

	"github.com/badhusha-dev/AurumReserve/internal/clock"
)

func TestRateService_TickTracksGlobalSpot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewRateService(store, clock.NewFixed(now), dec("7250.50"), WithWalkFunc(func() float64 { return 2.5 }))

	rate, err := svc.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !rate.Price24K.Equal(dec("7253")) {
		t.Fatalf("expected 7253 after +2.5 walk, got %s", rate.Price24K)
	}
	if !rate.Price22K.Equal(rate.Price24K.Mul(dec("0.916"))) {
		t.Fatalf("expected 22k derived from 24k, got %s", rate.Price22K)
	}
	if len(store.savedRates) != 1 {
		t.Fatalf("expected rate persisted, got %d saves", len(store.savedRates))
	}
}

func TestRateService_OverridePinsRate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := NewRateService(store, clock.NewFixed(now), dec("7250.50"), WithWalkFunc(func() float64 { return 5 }))

	pinned, err := svc.SetRate(context.Background(), dec("8000"))
	if err != nil {
		t.Fatalf("set rate: %v", err)
	}
	if !pinned.Price24K.Equal(dec("8000")) {
		t.Fatalf("expected 8000, got %s", pinned.Price24K)
	}
	if !svc.Overridden() {
		t.Fatalf("expected override flag set")
	}

	// Ticks keep walking the global spot but leave the shop rate alone.
	for i := 0; i < 3; i++ {
		if _, err := svc.Tick(context.Background()); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if got := svc.Current().Price24K; !got.Equal(dec("8000")) {
		t.Fatalf("expected pinned 8000, got %s", got)
	}

	// Reverting re-syncs on the next tick: 7250.50 + 4 ticks of +5.
	svc.RevertToAuto()
	rate, err := svc.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick after revert: %v", err)
	}
	if !rate.Price24K.Equal(dec("7270.50")) {
		t.Fatalf("expected 7270.50 after revert, got %s", rate.Price24K)
	}
}

func TestRateService_SetRateRejectsNonPositive(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewRateService(store, clock.NewSystem(), dec("7000"))

	if _, err := svc.SetRate(context.Background(), dec("0")); err == nil {
		t.Fatalf("expected error for zero rate")
	}
	if _, err := svc.SetRate(context.Background(), dec("-10")); err == nil {
		t.Fatalf("expected error for negative rate")
	}
}
