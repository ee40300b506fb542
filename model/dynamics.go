package model

// DynamicsProperties is a full snapshot of the material and inertial
// parameters governing one link's interaction with the physics backend.
type DynamicsProperties struct {
	Mass                 float64 `json:"mass" yaml:"mass"`
	LateralFriction      float64 `json:"lateral_friction" yaml:"lateral_friction"`
	LocalInertiaDiagonal Vec3    `json:"local_inertia_diagonal" yaml:"local_inertia_diagonal"`
	Restitution          float64 `json:"restitution" yaml:"restitution"`
	RollingFriction      float64 `json:"rolling_friction" yaml:"rolling_friction"`
	SpinningFriction     float64 `json:"spinning_friction" yaml:"spinning_friction"`
	ContactDamping       float64 `json:"contact_damping" yaml:"contact_damping"`
	ContactStiffness     float64 `json:"contact_stiffness" yaml:"contact_stiffness"`
	CollisionMargin      float64 `json:"collision_margin" yaml:"collision_margin"`
}

// DynamicsUpdate is a partial write of DynamicsProperties. Nil fields are
// left untouched by the backend.
type DynamicsUpdate struct {
	Mass                 *float64 `json:"mass,omitempty" yaml:"mass,omitempty"`
	LateralFriction      *float64 `json:"lateral_friction,omitempty" yaml:"lateral_friction,omitempty"`
	LocalInertiaDiagonal *Vec3    `json:"local_inertia_diagonal,omitempty" yaml:"local_inertia_diagonal,omitempty"`
	Restitution          *float64 `json:"restitution,omitempty" yaml:"restitution,omitempty"`
	RollingFriction      *float64 `json:"rolling_friction,omitempty" yaml:"rolling_friction,omitempty"`
	SpinningFriction     *float64 `json:"spinning_friction,omitempty" yaml:"spinning_friction,omitempty"`
	ContactDamping       *float64 `json:"contact_damping,omitempty" yaml:"contact_damping,omitempty"`
	ContactStiffness     *float64 `json:"contact_stiffness,omitempty" yaml:"contact_stiffness,omitempty"`
	CollisionMargin      *float64 `json:"collision_margin,omitempty" yaml:"collision_margin,omitempty"`
}

// IsZero reports whether the update would change nothing.
func (u DynamicsUpdate) IsZero() bool {
	return u.Mass == nil &&
		u.LateralFriction == nil &&
		u.LocalInertiaDiagonal == nil &&
		u.Restitution == nil &&
		u.RollingFriction == nil &&
		u.SpinningFriction == nil &&
		u.ContactDamping == nil &&
		u.ContactStiffness == nil &&
		u.CollisionMargin == nil
}

// ApplyTo overlays the set fields of the update onto props.
func (u DynamicsUpdate) ApplyTo(props *DynamicsProperties) {
	if props == nil {
		return
	}
	if u.Mass != nil {
		props.Mass = *u.Mass
	}
	if u.LateralFriction != nil {
		props.LateralFriction = *u.LateralFriction
	}
	if u.LocalInertiaDiagonal != nil {
		props.LocalInertiaDiagonal = *u.LocalInertiaDiagonal
	}
	if u.Restitution != nil {
		props.Restitution = *u.Restitution
	}
	if u.RollingFriction != nil {
		props.RollingFriction = *u.RollingFriction
	}
	if u.SpinningFriction != nil {
		props.SpinningFriction = *u.SpinningFriction
	}
	if u.ContactDamping != nil {
		props.ContactDamping = *u.ContactDamping
	}
	if u.ContactStiffness != nil {
		props.ContactStiffness = *u.ContactStiffness
	}
	if u.CollisionMargin != nil {
		props.CollisionMargin = *u.CollisionMargin
	}
}
