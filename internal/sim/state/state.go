// internal/sim/state/state.go
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/roboticsfoundry/physics-control-plane/engine"
	"github.com/roboticsfoundry/physics-control-plane/internal/logging"
	"github.com/roboticsfoundry/physics-control-plane/model"
	"github.com/roboticsfoundry/physics-control-plane/object"
)

var (
	// ErrObjectExists indicates an add with a name that is already live.
	ErrObjectExists = errors.New("object already exists")
	// ErrObjectNotFound indicates a request addressed an unknown name.
	ErrObjectNotFound = errors.New("object not found")
)

// WorldState owns the name -> object registry and the single shared lock
// that keeps request handling and simulation stepping mutually exclusive.
//
// All mutators take the write lock; reads take the read lock. The stepper
// runs each tick under the write lock via RunSimTick, so a tick never
// observes a half-applied mutation and a read never observes a mid-step
// backend.
type WorldState struct {
	// mu is the coarse world-level lock. Take this before any engine call
	// to maintain the global lock ordering of WorldState -> engine locks.
	mu sync.RWMutex

	eng engine.Engine

	// objects is the live registry. Entries are exclusively owned: no
	// object reference escapes the lock window.
	objects map[string]object.Object

	log logging.Logger

	// metrics is an optional recorder for Prometheus-friendly gauges.
	metrics ObjectMetricsRecorder
}

// ObjectMetricsRecorder receives registry count updates after every mutation.
type ObjectMetricsRecorder interface {
	SetObjectCounts(byKind map[model.ObjectKind]int)
}

// Option customises WorldState construction.
type Option func(*WorldState)

// WithMetricsRecorder attaches an optional metrics recorder for object counts.
func WithMetricsRecorder(m ObjectMetricsRecorder) Option {
	return func(s *WorldState) {
		s.metrics = m
	}
}

// NewWorldState wires the registry to the engine.
func NewWorldState(eng engine.Engine, log logging.Logger, opts ...Option) *WorldState {
	if log == nil {
		log = logging.Noop()
	}
	s := &WorldState{
		eng:     eng,
		objects: make(map[string]object.Object),
		log:     log,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.updateMetricsLocked()
	return s
}

// Engine exposes the backend for the stepper.
func (s *WorldState) Engine() engine.Engine {
	return s.eng
}

// AddObject constructs an object of the given kind from its config and
// registers it under the config's name. The duplicate-name check happens
// before any backend construction, and insertion happens only after
// construction succeeds, so a failed add never leaves a partial entry.
func (s *WorldState) AddObject(cfg *model.ObjectConfig, kind model.ObjectKind) (string, error) {
	if cfg == nil || cfg.Name == "" {
		return "", fmt.Errorf("object config missing name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[cfg.Name]; exists {
		return "", fmt.Errorf("%w: %q", ErrObjectExists, cfg.Name)
	}

	obj, err := object.New(s.eng, kind, cfg)
	if err != nil {
		return "", err
	}
	s.objects[cfg.Name] = obj
	s.updateMetricsLocked()

	s.log.Info(context.Background(), "added object",
		logging.String("name", cfg.Name),
		logging.String("kind", kind.String()),
	)
	return cfg.Name, nil
}

// RemoveObject destroys the named object and unmaps it. The mapping is
// removed even when destroy fails, so the backend failure is surfaced but
// the name becomes available again; destroy is never invoked twice for the
// same entry.
func (s *WorldState) RemoveObject(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}

	delete(s.objects, name)
	s.updateMetricsLocked()

	if err := obj.Destroy(); err != nil {
		s.log.Error(context.Background(), "object destroy failed",
			logging.String("name", name),
			logging.Err(err),
		)
		return fmt.Errorf("destroy %q: %w", name, err)
	}

	s.log.Info(context.Background(), "removed object", logging.String("name", name))
	return nil
}

// ObjectDynamics reads one link's dynamics snapshot under the read lock.
func (s *WorldState) ObjectDynamics(name string, link int) (model.DynamicsProperties, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[name]
	if !ok {
		return model.DynamicsProperties{}, fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	return obj.Dynamics(link)
}

// ChangeObjectDynamics applies a partial dynamics update under the write lock.
func (s *WorldState) ChangeObjectDynamics(name string, link int, upd model.DynamicsUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	return obj.ChangeDynamics(link, upd)
}

// ObjectPose reads the named object's base pose under the read lock.
func (s *WorldState) ObjectPose(name string) (model.Pose, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[name]
	if !ok {
		return model.Pose{}, fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	return obj.Pose()
}

// SetObjectPose writes the named object's base pose under the write lock.
func (s *WorldState) SetObjectPose(name string, pose model.Pose) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrObjectNotFound, name)
	}
	return obj.SetPose(pose)
}

// RunSimTick executes one simulation step under the write lock so ticks and
// request-driven mutations stay mutually exclusive. The optional fn runs
// before the engine step, still under the lock.
func (s *WorldState) RunSimTick(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fn != nil {
		fn()
	}
	if s.eng == nil {
		return nil
	}
	return s.eng.Step()
}

// Drain destroys every remaining object and empties the registry. Order is
// unspecified; each entry is destroyed exactly once and destroy failures are
// logged but do not stop the drain. Returns the number of entries removed.
func (s *WorldState) Drain() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for name, obj := range s.objects {
		delete(s.objects, name)
		n++
		if err := obj.Destroy(); err != nil {
			s.log.Error(context.Background(), "destroy during drain failed",
				logging.String("name", name),
				logging.Err(err),
			)
		}
	}
	s.updateMetricsLocked()
	return n
}

// ObjectCount reports the number of live objects.
func (s *WorldState) ObjectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// ObjectNames returns a snapshot of the live object names.
func (s *WorldState) ObjectNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	return names
}

// updateMetricsLocked pushes per-kind counts to the recorder. Callers must
// hold the write lock (or be inside construction).
func (s *WorldState) updateMetricsLocked() {
	if s.metrics == nil {
		return
	}
	byKind := make(map[model.ObjectKind]int)
	for _, obj := range s.objects {
		byKind[obj.Kind()]++
	}
	s.metrics.SetObjectCounts(byKind)
}
