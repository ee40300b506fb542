// Package engine defines the boundary to the physics backend. The control
// plane never talks to a concrete simulator directly; it goes through the
// Engine interface so the backend stays swappable and tests can run against
// the in-memory implementation in engine/memengine.
package engine

import (
	"errors"

	"github.com/roboticsfoundry/physics-control-plane/model"
)

var (
	// ErrBodyNotFound indicates a body handle is unknown to the backend,
	// typically because the body was already removed.
	ErrBodyNotFound = errors.New("body not found")
	// ErrInvalidLink indicates a link index that does not exist on the body.
	ErrInvalidLink = errors.New("invalid link index")
	// ErrDynamicsUnsupported indicates the addressed object kind does not
	// expose per-link dynamics. Callers must be able to tell this apart
	// from a successful no-op.
	ErrDynamicsUnsupported = errors.New("object does not support dynamics")
	// ErrInvalidOptions indicates an option value that is not one of the
	// four accepted encodings, or references an unknown flag name.
	ErrInvalidOptions = errors.New("invalid options value")
)

// BodyID is the backend's opaque handle for a constructed body. It is owned
// exclusively by the object that created it and is invalid after removal.
type BodyID int

// BodyParams carries everything the backend needs to construct a body.
type BodyParams struct {
	Shape       string
	HalfExtents []float64
	Radius      float64

	Mass            float64
	LateralFriction float64
	Restitution     float64
	InitialPose     model.Pose

	// LinkCount is the number of links beyond the base.
	LinkCount int

	// Collidable is false for purely visual bodies; they keep a pose but
	// never participate in collision handling.
	Collidable bool

	// Soft marks deformable bodies; the backend tracks their pose but
	// refuses per-link dynamics access.
	Soft bool

	// Flags is a combined bitmask of backend construction options, already
	// normalized by ParseOptions.
	Flags int
}

// FlagNamespace resolves symbolic option names to backend flag values.
type FlagNamespace interface {
	// FlagValue returns the integer value of a named construction flag,
	// and whether the name is known.
	FlagValue(name string) (int, bool)
}

// Engine is the narrow surface of the physics backend used by the control
// plane. All calls are serialized by the caller's world lock; implementations
// may add their own locking but must not call back into the world.
type Engine interface {
	FlagNamespace

	CreateBody(p BodyParams) (BodyID, error)
	RemoveBody(id BodyID) error

	BasePose(id BodyID) (model.Pose, error)
	SetBasePose(id BodyID, pose model.Pose) error

	Dynamics(id BodyID, link int) (model.DynamicsProperties, error)
	ChangeDynamics(id BodyID, link int, upd model.DynamicsUpdate) error

	// Step advances the simulation by one tick.
	Step() error
}
