// Package object implements the capability set shared by every simulated
// entity kind. A kind tag selects behaviour at construction time; there is
// no runtime type inspection downstream of New.
package object

import (
	"fmt"

	"github.com/roboticsfoundry/physics-control-plane/engine"
	"github.com/roboticsfoundry/physics-control-plane/model"
)

// Object is one live entity owning a backend body handle. All methods must
// be called while holding the world lock; the registry is the only owner of
// Object references.
type Object interface {
	Name() string
	Kind() model.ObjectKind

	// Destroy releases the backend body. The registry calls it exactly once.
	Destroy() error

	Pose() (model.Pose, error)
	SetPose(model.Pose) error

	// Dynamics and ChangeDynamics fail with engine.ErrDynamicsUnsupported
	// on kinds without link-indexed dynamics, never a silent no-op.
	Dynamics(link int) (model.DynamicsProperties, error)
	ChangeDynamics(link int, upd model.DynamicsUpdate) error
}

// New constructs an object of the given kind from its config against the
// engine. On error no backend body is left behind.
func New(eng engine.Engine, kind model.ObjectKind, cfg *model.ObjectConfig) (Object, error) {
	if eng == nil {
		return nil, fmt.Errorf("nil engine")
	}
	if cfg == nil || cfg.Name == "" {
		return nil, fmt.Errorf("object config missing name")
	}

	params, err := bodyParams(eng, kind, cfg)
	if err != nil {
		return nil, err
	}

	id, err := eng.CreateBody(params)
	if err != nil {
		return nil, fmt.Errorf("construct %s object %q: %w", kind, cfg.Name, err)
	}

	base := base{name: cfg.Name, kind: kind, eng: eng, body: id}
	if kind.HasLinkDynamics() {
		return &rigidBody{base: base}, nil
	}
	return &poseOnly{base: base}, nil
}

func bodyParams(eng engine.Engine, kind model.ObjectKind, cfg *model.ObjectConfig) (engine.BodyParams, error) {
	params := engine.BodyParams{
		Shape:           cfg.Shape,
		HalfExtents:     cfg.HalfExtents,
		Radius:          cfg.Radius,
		Mass:            cfg.BaseMass,
		LateralFriction: cfg.LateralFriction,
		Restitution:     cfg.Restitution,
		InitialPose:     cfg.InitialPose(),
		LinkCount:       cfg.LinkCount,
	}

	switch kind {
	case model.KindVisual, model.KindSensor:
		params.Mass = 0
		params.LinkCount = 0

	case model.KindCollision:
		params.Collidable = true

	case model.KindDynamic:
		if cfg.BaseMass <= 0 {
			return engine.BodyParams{}, fmt.Errorf("dynamic object %q requires a positive base_mass", cfg.Name)
		}
		params.Collidable = true

	case model.KindRobot, model.KindURDF:
		if cfg.URDFFilename == "" {
			return engine.BodyParams{}, fmt.Errorf("%s object %q requires urdf_filename", kind, cfg.Name)
		}
		params.Collidable = true
		flags, err := engine.ParseOptions(cfg.Options, eng)
		if err != nil {
			return engine.BodyParams{}, fmt.Errorf("%s object %q: %w", kind, cfg.Name, err)
		}
		params.Flags = flags

	case model.KindSoftBody:
		params.Soft = true
		flags, err := engine.ParseOptions(cfg.Options, eng)
		if err != nil {
			return engine.BodyParams{}, fmt.Errorf("soft_body object %q: %w", cfg.Name, err)
		}
		params.Flags = flags

	default:
		return engine.BodyParams{}, fmt.Errorf("unknown object kind %v", kind)
	}

	return params, nil
}

type base struct {
	name string
	kind model.ObjectKind
	eng  engine.Engine
	body engine.BodyID
}

func (b *base) Name() string           { return b.name }
func (b *base) Kind() model.ObjectKind { return b.kind }

func (b *base) Destroy() error {
	return b.eng.RemoveBody(b.body)
}

func (b *base) Pose() (model.Pose, error) {
	return b.eng.BasePose(b.body)
}

func (b *base) SetPose(pose model.Pose) error {
	return b.eng.SetBasePose(b.body, pose)
}

// rigidBody covers the kinds with link-indexed dynamics: collision, dynamic,
// robot, and urdf.
type rigidBody struct {
	base
}

func (r *rigidBody) Dynamics(link int) (model.DynamicsProperties, error) {
	return r.eng.Dynamics(r.body, link)
}

func (r *rigidBody) ChangeDynamics(link int, upd model.DynamicsUpdate) error {
	return r.eng.ChangeDynamics(r.body, link, upd)
}

// poseOnly covers visual, soft-body, and sensor kinds. They keep a pose but
// refuse dynamics access without touching the backend.
type poseOnly struct {
	base
}

func (p *poseOnly) Dynamics(int) (model.DynamicsProperties, error) {
	return model.DynamicsProperties{}, fmt.Errorf("%w: %s object %q", engine.ErrDynamicsUnsupported, p.kind, p.name)
}

func (p *poseOnly) ChangeDynamics(int, model.DynamicsUpdate) error {
	return fmt.Errorf("%w: %s object %q", engine.ErrDynamicsUnsupported, p.kind, p.name)
}
