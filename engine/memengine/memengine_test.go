package memengine

import (
	"errors"
	"testing"

	"github.com/roboticsfoundry/physics-control-plane/engine"
	"github.com/roboticsfoundry/physics-control-plane/model"
)

func TestCreateAndRemoveBody(t *testing.T) {
	e := New()

	id, err := e.CreateBody(engine.BodyParams{Shape: "box", Mass: 1, Collidable: true})
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}
	if e.BodyCount() != 1 {
		t.Fatalf("expected 1 body, got %d", e.BodyCount())
	}

	if err := e.RemoveBody(id); err != nil {
		t.Fatalf("RemoveBody: %v", err)
	}
	if e.BodyCount() != 0 {
		t.Fatalf("expected 0 bodies, got %d", e.BodyCount())
	}

	if err := e.RemoveBody(id); !errors.Is(err, engine.ErrBodyNotFound) {
		t.Fatalf("expected ErrBodyNotFound on second remove, got %v", err)
	}
}

func TestChangeDynamicsRoundTrip(t *testing.T) {
	e := New()
	id, err := e.CreateBody(engine.BodyParams{Shape: "box", Mass: 1, LateralFriction: 0.5, Collidable: true})
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}

	mass := 2.0
	if err := e.ChangeDynamics(id, 0, model.DynamicsUpdate{Mass: &mass}); err != nil {
		t.Fatalf("ChangeDynamics: %v", err)
	}

	props, err := e.Dynamics(id, 0)
	if err != nil {
		t.Fatalf("Dynamics: %v", err)
	}
	if props.Mass != 2.0 {
		t.Fatalf("expected mass 2.0, got %g", props.Mass)
	}
	// Unset fields keep their prior values.
	if props.LateralFriction != 0.5 {
		t.Fatalf("expected lateral friction 0.5 preserved, got %g", props.LateralFriction)
	}
}

func TestInvalidLinkIndex(t *testing.T) {
	e := New()
	id, err := e.CreateBody(engine.BodyParams{Shape: "box", Mass: 1, LinkCount: 2, Collidable: true})
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}

	if _, err := e.Dynamics(id, 2); err != nil {
		t.Fatalf("link 2 should exist on a 2-link body: %v", err)
	}
	if _, err := e.Dynamics(id, 3); !errors.Is(err, engine.ErrInvalidLink) {
		t.Fatalf("expected ErrInvalidLink for link 3, got %v", err)
	}
	if err := e.ChangeDynamics(id, -1, model.DynamicsUpdate{}); !errors.Is(err, engine.ErrInvalidLink) {
		t.Fatalf("expected ErrInvalidLink for link -1, got %v", err)
	}
}

func TestSoftBodyRefusesDynamics(t *testing.T) {
	e := New()
	id, err := e.CreateBody(engine.BodyParams{Shape: "cloth", Mass: 1, Soft: true})
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}
	if _, err := e.Dynamics(id, 0); !errors.Is(err, engine.ErrDynamicsUnsupported) {
		t.Fatalf("expected ErrDynamicsUnsupported, got %v", err)
	}
}

func TestStepIntegratesGravity(t *testing.T) {
	e := New(WithGravity(model.Vec3{Z: -10}), WithTimestep(0.1))

	dynamic, err := e.CreateBody(engine.BodyParams{Shape: "sphere", Mass: 1, Collidable: true})
	if err != nil {
		t.Fatalf("CreateBody dynamic: %v", err)
	}
	static, err := e.CreateBody(engine.BodyParams{Shape: "box", Mass: 0, Collidable: true})
	if err != nil {
		t.Fatalf("CreateBody static: %v", err)
	}

	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	pose, err := e.BasePose(dynamic)
	if err != nil {
		t.Fatalf("BasePose dynamic: %v", err)
	}
	if pose.Position.Z >= 0 {
		t.Fatalf("expected dynamic body to fall, z=%g", pose.Position.Z)
	}

	staticPose, err := e.BasePose(static)
	if err != nil {
		t.Fatalf("BasePose static: %v", err)
	}
	if staticPose.Position.Z != 0 {
		t.Fatalf("static body moved, z=%g", staticPose.Position.Z)
	}
}

func TestSetBasePoseZeroesVelocity(t *testing.T) {
	e := New(WithGravity(model.Vec3{Z: -10}), WithTimestep(0.1))
	id, err := e.CreateBody(engine.BodyParams{Shape: "sphere", Mass: 1, Collidable: true})
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}

	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	target := model.Pose{Position: model.Vec3{X: 1, Y: 2, Z: 3}, Orientation: model.IdentityQuat()}
	if err := e.SetBasePose(id, target); err != nil {
		t.Fatalf("SetBasePose: %v", err)
	}

	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	pose, err := e.BasePose(id)
	if err != nil {
		t.Fatalf("BasePose: %v", err)
	}
	// Only one step of fresh free fall after the teleport.
	wantZ := 3 - 10*0.1*0.1
	if diff := pose.Position.Z - wantZ; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected z=%g after teleport and one step, got %g", wantZ, pose.Position.Z)
	}
}
