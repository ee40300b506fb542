package simloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/roboticsfoundry/physics-control-plane/engine/memengine"
	"github.com/roboticsfoundry/physics-control-plane/internal/logging"
	sim "github.com/roboticsfoundry/physics-control-plane/internal/sim/state"
	"github.com/roboticsfoundry/physics-control-plane/model"
)

type countingObserver struct {
	mu      sync.Mutex
	steps   int
	running bool
}

func (o *countingObserver) ObserveStep(time.Duration) {
	o.mu.Lock()
	o.steps++
	o.mu.Unlock()
}

func (o *countingObserver) SetRunning(running bool) {
	o.mu.Lock()
	o.running = running
	o.mu.Unlock()
}

func (o *countingObserver) snapshot() (int, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.steps, o.running
}

func newWorldForTest(t *testing.T) *sim.WorldState {
	t.Helper()
	state := sim.NewWorldState(memengine.New(), logging.Noop())
	_, err := state.AddObject(&model.ObjectConfig{
		Name:         "ball",
		Shape:        "sphere",
		Radius:       0.2,
		BaseMass:     1.0,
		InitPosition: []float64{0, 0, 10},
	}, model.KindDynamic)
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	return state
}

func TestRunStepsUntilCancelled(t *testing.T) {
	state := newWorldForTest(t)
	obs := &countingObserver{}
	stepper := New(state, logging.Noop(), WithTick(time.Millisecond), WithObserver(obs))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := stepper.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run returned %v, want deadline exceeded", err)
	}

	if stepper.Steps() == 0 {
		t.Fatal("no steps executed")
	}
	steps, running := obs.snapshot()
	if steps == 0 {
		t.Error("observer saw no steps")
	}
	if running {
		t.Error("observer still marked running after Run returned")
	}

	pose, err := state.ObjectPose("ball")
	if err != nil {
		t.Fatalf("ObjectPose: %v", err)
	}
	if pose.Position.Z >= 10 {
		t.Errorf("z = %v, want the ball to have fallen below 10", pose.Position.Z)
	}
}

func TestStartPausedHoldsTimeStill(t *testing.T) {
	state := newWorldForTest(t)
	stepper := New(state, logging.Noop(), WithTick(time.Millisecond), StartPaused())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- stepper.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	if got := stepper.Steps(); got != 0 {
		t.Errorf("steps while paused = %d, want 0", got)
	}

	stepper.Resume()
	deadline := time.Now().Add(time.Second)
	for stepper.Steps() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if stepper.Steps() == 0 {
		t.Error("no steps after Resume")
	}

	stepper.Pause()
	if !stepper.Paused() {
		t.Error("Paused() = false after Pause")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}
