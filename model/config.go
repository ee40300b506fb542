package model

// ObjectConfig describes one object to construct against the physics
// backend. Configs are authored as YAML files (one object per file) or
// passed inline through the AddObject request.
//
// Options accepts any of the shapes understood by engine.ParseOptions: a
// combined integer, a "NAME|NAME" string, a list of names, or a list of
// integers.
type ObjectConfig struct {
	Name string `yaml:"name" json:"name"`

	// Shape of the base collision/visual geometry, e.g. "box" or "sphere".
	Shape       string    `yaml:"shape,omitempty" json:"shape,omitempty"`
	HalfExtents []float64 `yaml:"half_extents,omitempty" json:"half_extents,omitempty"`
	Radius      float64   `yaml:"radius,omitempty" json:"radius,omitempty"`

	BaseMass        float64   `yaml:"base_mass,omitempty" json:"base_mass,omitempty"`
	LateralFriction float64   `yaml:"lateral_friction,omitempty" json:"lateral_friction,omitempty"`
	Restitution     float64   `yaml:"restitution,omitempty" json:"restitution,omitempty"`
	InitPosition    []float64 `yaml:"init_position,omitempty" json:"init_position,omitempty"`
	InitOrientation []float64 `yaml:"init_orientation,omitempty" json:"init_orientation,omitempty"`

	// LinkCount is the number of links beyond the base for multi-body
	// objects (robots, URDF models). The base is always link 0.
	LinkCount int `yaml:"link_count,omitempty" json:"link_count,omitempty"`

	// URDFFilename points at the model description for URDF and robot kinds.
	URDFFilename string `yaml:"urdf_filename,omitempty" json:"urdf_filename,omitempty"`

	Options any `yaml:"options,omitempty" json:"options,omitempty"`
}

// InitialPose converts the configured position/orientation slices into a
// Pose, defaulting to the origin with identity orientation.
func (c *ObjectConfig) InitialPose() Pose {
	pose := Pose{Orientation: IdentityQuat()}
	if len(c.InitPosition) == 3 {
		pose.Position = Vec3{X: c.InitPosition[0], Y: c.InitPosition[1], Z: c.InitPosition[2]}
	}
	if len(c.InitOrientation) == 4 {
		pose.Orientation = Quat{
			X: c.InitOrientation[0],
			Y: c.InitOrientation[1],
			Z: c.InitOrientation[2],
			W: c.InitOrientation[3],
		}
	}
	return pose
}
