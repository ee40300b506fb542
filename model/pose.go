package model

// Vec3 is a position or extent in world coordinates (metres).
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Quat is a unit quaternion in (x, y, z, w) order, matching the convention
// used by the physics backend.
type Quat struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	W float64 `json:"w" yaml:"w"`
}

// IdentityQuat returns the no-rotation orientation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// Pose is the position and orientation of a body's base.
type Pose struct {
	Position    Vec3 `json:"position" yaml:"position"`
	Orientation Quat `json:"orientation" yaml:"orientation"`
}
