// Package simloop drives the simulation forward at a fixed cadence.
//
// The Stepper is the only caller of the engine's Step; every tick runs under
// the world lock so request handlers never observe a half-stepped world.
package simloop

import (
	"context"
	"sync"
	"time"

	"github.com/roboticsfoundry/physics-control-plane/internal/logging"
	sim "github.com/roboticsfoundry/physics-control-plane/internal/sim/state"
)

// DefaultTick is the loop interval used when none is configured.
const DefaultTick = 10 * time.Millisecond

// StepObserver receives loop telemetry. observability.SimCollector satisfies
// it; the Noop observer is used when metrics are disabled.
type StepObserver interface {
	ObserveStep(d time.Duration)
	SetRunning(running bool)
}

type noopObserver struct{}

func (noopObserver) ObserveStep(time.Duration) {}
func (noopObserver) SetRunning(bool)           {}

// Option customises Stepper construction.
type Option func(*Stepper)

// WithTick overrides the loop interval.
func WithTick(d time.Duration) Option {
	return func(s *Stepper) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithObserver installs a telemetry sink for step metrics.
func WithObserver(obs StepObserver) Option {
	return func(s *Stepper) {
		if obs != nil {
			s.obs = obs
		}
	}
}

// StartPaused constructs the stepper in the paused state; Resume starts it.
func StartPaused() Option {
	return func(s *Stepper) {
		s.paused = true
	}
}

// Stepper runs the simulation loop against one WorldState.
type Stepper struct {
	state *sim.WorldState
	log   logging.Logger
	obs   StepObserver
	tick  time.Duration

	mu     sync.Mutex
	paused bool
	steps  uint64
}

// New constructs a Stepper. The loop does not run until Run is called.
func New(state *sim.WorldState, log logging.Logger, opts ...Option) *Stepper {
	if log == nil {
		log = logging.Noop()
	}
	s := &Stepper{
		state: state,
		log:   log,
		obs:   noopObserver{},
		tick:  DefaultTick,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pause stops stepping after the in-flight tick completes. Requests keep
// being served while paused; only time stands still.
func (s *Stepper) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
	s.obs.SetRunning(false)
}

// Resume restarts stepping.
func (s *Stepper) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	s.obs.SetRunning(true)
}

// Paused reports whether the loop is currently paused.
func (s *Stepper) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Steps reports how many ticks have executed since construction.
func (s *Stepper) Steps() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Run executes the loop until ctx is cancelled. The cadence is best effort:
// if a tick overruns the interval the next one fires as soon as the ticker
// allows, without trying to catch up.
func (s *Stepper) Run(ctx context.Context) error {
	s.obs.SetRunning(!s.Paused())
	defer s.obs.SetRunning(false)

	s.log.Info(ctx, "simulation loop started",
		logging.String("tick", s.tick.String()),
		logging.Any("paused", s.Paused()),
	)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, "simulation loop stopped",
				logging.Any("steps", s.Steps()),
			)
			return ctx.Err()
		case <-ticker.C:
			if s.Paused() {
				continue
			}
			s.stepOnce(ctx)
		}
	}
}

func (s *Stepper) stepOnce(ctx context.Context) {
	start := time.Now()
	if err := s.state.RunSimTick(func() {}); err != nil {
		s.log.Error(ctx, "simulation step failed", logging.Err(err))
		return
	}
	s.mu.Lock()
	s.steps++
	s.mu.Unlock()
	s.obs.ObserveStep(time.Since(start))
}
