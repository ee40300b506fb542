// Package memengine is an in-memory physics backend. It implements just
// enough rigid-body bookkeeping (pose, velocity, per-link dynamics) for the
// control plane to run and be tested without an external simulator process.
package memengine

import (
	"fmt"
	"sync"

	"github.com/roboticsfoundry/physics-control-plane/engine"
	"github.com/roboticsfoundry/physics-control-plane/model"
)

// flagTable mirrors the backend's construction-flag namespace.
var flagTable = map[string]int{
	"USE_INERTIA_FROM_FILE":            2,
	"USE_SELF_COLLISION":               8,
	"USE_SELF_COLLISION_EXCLUDE_PARENT": 16,
	"USE_IMPLICIT_CYLINDER":            128,
	"ENABLE_CACHED_GRAPHICS_SHAPES":    1024,
	"ENABLE_SLEEPING":                  2048,
	"MAINTAIN_LINK_ORDER":              4096,
}

type body struct {
	pose       model.Pose
	velocity   model.Vec3
	links      []model.DynamicsProperties // index 0 is the base
	collidable bool
	soft       bool
}

// Engine is an in-memory engine.Engine. Bodies live in a map keyed by the
// handle issued at creation; handles are never reused.
type Engine struct {
	mu sync.RWMutex

	gravity  model.Vec3
	timestep float64

	nextID engine.BodyID
	bodies map[engine.BodyID]*body
}

// Option customises engine construction.
type Option func(*Engine)

// WithGravity sets the constant acceleration applied to dynamic bodies on
// every step. The default is free fall along -Z.
func WithGravity(g model.Vec3) Option {
	return func(e *Engine) { e.gravity = g }
}

// WithTimestep sets the integration timestep in seconds per Step call.
func WithTimestep(dt float64) Option {
	return func(e *Engine) {
		if dt > 0 {
			e.timestep = dt
		}
	}
}

// New constructs an empty engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		gravity:  model.Vec3{Z: -9.81},
		timestep: 1.0 / 240.0,
		nextID:   1,
		bodies:   make(map[engine.BodyID]*body),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// FlagValue resolves a symbolic construction-flag name.
func (e *Engine) FlagValue(name string) (int, bool) {
	v, ok := flagTable[name]
	return v, ok
}

// CreateBody registers a body and returns its handle.
func (e *Engine) CreateBody(p engine.BodyParams) (engine.BodyID, error) {
	if p.LinkCount < 0 {
		return 0, fmt.Errorf("negative link count %d", p.LinkCount)
	}
	if p.Mass < 0 {
		return 0, fmt.Errorf("negative base mass %g", p.Mass)
	}

	links := make([]model.DynamicsProperties, p.LinkCount+1)
	links[0] = model.DynamicsProperties{
		Mass:            p.Mass,
		LateralFriction: p.LateralFriction,
		Restitution:     p.Restitution,
	}
	for i := 1; i < len(links); i++ {
		links[i] = model.DynamicsProperties{LateralFriction: p.LateralFriction}
	}

	pose := p.InitialPose
	if pose.Orientation == (model.Quat{}) {
		pose.Orientation = model.IdentityQuat()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.bodies[id] = &body{
		pose:       pose,
		links:      links,
		collidable: p.Collidable,
		soft:       p.Soft,
	}
	return id, nil
}

// RemoveBody drops a body; the handle is invalid afterwards.
func (e *Engine) RemoveBody(id engine.BodyID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.bodies[id]; !ok {
		return fmt.Errorf("%w: %d", engine.ErrBodyNotFound, id)
	}
	delete(e.bodies, id)
	return nil
}

// BasePose returns the body's current base pose.
func (e *Engine) BasePose(id engine.BodyID) (model.Pose, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.bodies[id]
	if !ok {
		return model.Pose{}, fmt.Errorf("%w: %d", engine.ErrBodyNotFound, id)
	}
	return b.pose, nil
}

// SetBasePose teleports the body's base, zeroing its velocity.
func (e *Engine) SetBasePose(id engine.BodyID, pose model.Pose) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %d", engine.ErrBodyNotFound, id)
	}
	b.pose = pose
	b.velocity = model.Vec3{}
	return nil
}

// Dynamics returns the current dynamics snapshot for one link.
func (e *Engine) Dynamics(id engine.BodyID, link int) (model.DynamicsProperties, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.bodies[id]
	if !ok {
		return model.DynamicsProperties{}, fmt.Errorf("%w: %d", engine.ErrBodyNotFound, id)
	}
	if b.soft {
		return model.DynamicsProperties{}, engine.ErrDynamicsUnsupported
	}
	if link < 0 || link >= len(b.links) {
		return model.DynamicsProperties{}, fmt.Errorf("%w: %d (body has %d links)", engine.ErrInvalidLink, link, len(b.links))
	}
	return b.links[link], nil
}

// ChangeDynamics overlays the set fields of upd onto one link, leaving the
// rest untouched.
func (e *Engine) ChangeDynamics(id engine.BodyID, link int, upd model.DynamicsUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %d", engine.ErrBodyNotFound, id)
	}
	if b.soft {
		return engine.ErrDynamicsUnsupported
	}
	if link < 0 || link >= len(b.links) {
		return fmt.Errorf("%w: %d (body has %d links)", engine.ErrInvalidLink, link, len(b.links))
	}
	upd.ApplyTo(&b.links[link])
	return nil
}

// Step advances every dynamic body by one timestep of semi-implicit Euler
// under constant gravity. Static (zero-mass), non-collidable, and soft
// bodies keep their pose.
func (e *Engine) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	dt := e.timestep
	for _, b := range e.bodies {
		if !b.collidable || b.soft || b.links[0].Mass == 0 {
			continue
		}
		b.velocity.X += e.gravity.X * dt
		b.velocity.Y += e.gravity.Y * dt
		b.velocity.Z += e.gravity.Z * dt
		b.pose.Position.X += b.velocity.X * dt
		b.pose.Position.Y += b.velocity.Y * dt
		b.pose.Position.Z += b.velocity.Z * dt
	}
	return nil
}

// BodyCount reports how many bodies are currently alive.
func (e *Engine) BodyCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.bodies)
}
