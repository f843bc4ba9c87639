package app

import (
	"context"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/clock"
	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// RateStore persists the shop rate so it survives restarts.
type RateStore interface {
	SaveRate(ctx context.Context, rate domain.Rate) error
}

var (
	purity22Factor = decimal.RequireFromString("0.916")
	walkSpan       = 15.0 // per-tick perturbation drawn from (-7.5, +7.5)
)

// RateService is the single writer of the shop rate. Each tick the simulated
// global spot random-walks; unless an administrator override is pinned, the
// shop rate tracks it. Both karat prices are derived in the same assignment
// so readers never observe a torn pair.
type RateService struct {
	store RateStore
	clock clock.Clock
	walk  func() float64

	mu         sync.Mutex
	globalSpot decimal.Decimal
	current    domain.Rate
	override   bool
}

func NewRateService(store RateStore, clk clock.Clock, initial24K decimal.Decimal, opts ...RateServiceOption) *RateService {
	svc := &RateService{
		store:      store,
		clock:      clk,
		walk:       func() float64 { return rand.Float64()*walkSpan - walkSpan/2 },
		globalSpot: initial24K,
	}
	svc.current = svc.derive(initial24K)
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type RateServiceOption func(*RateService)

// WithWalkFunc replaces the random-walk perturbation, for deterministic tests.
func WithWalkFunc(f func() float64) RateServiceOption {
	return func(s *RateService) {
		if f != nil {
			s.walk = f
		}
	}
}

func (s *RateService) derive(price24K decimal.Decimal) domain.Rate {
	return domain.Rate{
		Price24K:  price24K,
		Price22K:  price24K.Mul(purity22Factor),
		Timestamp: s.clock.Now(),
	}
}

// Tick advances the simulated global spot and, when not overridden, re-syncs
// the shop rate to it. Returns the shop rate after the tick.
func (s *RateService) Tick(ctx context.Context) (domain.Rate, error) {
	s.mu.Lock()
	s.globalSpot = s.globalSpot.Add(decimal.NewFromFloat(s.walk()))
	if !s.override {
		s.current = s.derive(s.globalSpot)
	}
	snapshot := s.current
	s.mu.Unlock()

	if err := s.store.SaveRate(ctx, snapshot); err != nil {
		return domain.Rate{}, err
	}
	return snapshot, nil
}

// SetRate pins the shop rate to an administrator-supplied 24K price. Ticks
// leave the rate untouched until RevertToAuto.
func (s *RateService) SetRate(ctx context.Context, price24K decimal.Decimal) (domain.Rate, error) {
	if !price24K.IsPositive() {
		return domain.Rate{}, domain.ErrValidation
	}

	s.mu.Lock()
	s.override = true
	s.current = s.derive(price24K)
	snapshot := s.current
	s.mu.Unlock()

	if err := s.store.SaveRate(ctx, snapshot); err != nil {
		return domain.Rate{}, err
	}
	return snapshot, nil
}

// RevertToAuto releases the administrator override; the next tick re-syncs
// the shop rate to the simulated global spot.
func (s *RateService) RevertToAuto() {
	s.mu.Lock()
	s.override = false
	s.mu.Unlock()
}

// Current returns a consistent snapshot of the shop rate.
func (s *RateService) Current() domain.Rate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Overridden reports whether the rate is pinned by an administrator.
func (s *RateService) Overridden() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.override
}
