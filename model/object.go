package model

import "fmt"

// ObjectKind identifies what category of simulated entity an object is.
// The set is closed; dispatch on kind never falls back to type inspection.
type ObjectKind int

const (
	KindVisual ObjectKind = iota
	KindCollision
	KindDynamic
	KindRobot
	KindSoftBody
	KindURDF
	KindSensor
)

// kindNames is indexed by ObjectKind.
var kindNames = []string{
	"visual",
	"collision",
	"dynamic",
	"robot",
	"soft_body",
	"urdf",
	"sensor",
}

func (k ObjectKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
	return kindNames[k]
}

// KindFromCode resolves the wire-level kind code used by AddObject requests.
// The mapping is closed: {0: visual, 1: collision, 2: dynamic, 3: robot,
// 4: soft_body, 5: urdf}. Sensors are only constructed from the startup
// scene configuration and have no wire code.
func KindFromCode(code int) (ObjectKind, bool) {
	switch code {
	case 0:
		return KindVisual, true
	case 1:
		return KindCollision, true
	case 2:
		return KindDynamic, true
	case 3:
		return KindRobot, true
	case 4:
		return KindSoftBody, true
	case 5:
		return KindURDF, true
	default:
		return 0, false
	}
}

// HasLinkDynamics reports whether objects of this kind expose per-link
// dynamics properties through the engine.
func (k ObjectKind) HasLinkDynamics() bool {
	switch k {
	case KindCollision, KindDynamic, KindRobot, KindURDF:
		return true
	default:
		return false
	}
}
