package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/roboticsfoundry/physics-control-plane/internal/logging"
	"github.com/roboticsfoundry/physics-control-plane/internal/objectapi"
)

func TestServerStartupSmoke(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	cfg := Config{
		ListenAddress:  lis.Addr().String(),
		MetricsAddress: "",
		ScenePath:      writeSceneFixture(t),
		TickInterval:   5 * time.Millisecond,
		StartPaused:    true,
		GravityZ:       -9.81,
		Timestep:       1.0 / 240.0,
		LogLevel:       "warn",
		LogFormat:      "text",
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx, cfg, log, lis)
	}()

	conn, err := grpc.DialContext(ctx, cfg.ListenAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc.DialContext: %v", err)
	}
	defer conn.Close()

	client := objectapi.NewObjectServiceClient(conn)

	// The scene fixture pre-loads one collision object named floor.
	pos, err := client.GetPosition(ctx, &objectapi.GetPositionRequest{ObjectName: "floor"})
	if err != nil {
		t.Fatalf("GetPosition: %v", err)
	}
	if !pos.Success {
		t.Fatalf("GetPosition failed: %s (%s)", pos.Message, pos.Code)
	}

	add, err := client.AddObject(ctx, &objectapi.AddObjectRequest{
		KindCode:     2,
		InlineConfig: "name: probe\nshape: sphere\nradius: 0.1\nbase_mass: 1.0",
	})
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if !add.Success {
		t.Fatalf("AddObject failed: %s (%s)", add.Message, add.Code)
	}

	missing, err := client.GetPosition(ctx, &objectapi.GetPositionRequest{ObjectName: "ghost"})
	if err != nil {
		t.Fatalf("GetPosition: %v", err)
	}
	if missing.Success || missing.Code != objectapi.CodeUnknownName {
		t.Fatalf("got success=%v code=%q for unknown name, want %q", missing.Success, missing.Code, objectapi.CodeUnknownName)
	}

	cancel()

	if err := <-errCh; err != nil {
		t.Fatalf("server returned error: %v", err)
	}
}

func writeSceneFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	floorPath := filepath.Join(dir, "floor.yaml")
	floor := "name: floor\nshape: box\nhalf_extents: [5.0, 5.0, 0.1]\n"
	if err := os.WriteFile(floorPath, []byte(floor), 0o644); err != nil {
		t.Fatalf("write floor config: %v", err)
	}

	scenePath := filepath.Join(dir, "scene.yaml")
	scene := "collision_objects:\n  - " + floorPath + "\n"
	if err := os.WriteFile(scenePath, []byte(scene), 0o644); err != nil {
		t.Fatalf("write scene config: %v", err)
	}
	return scenePath
}
