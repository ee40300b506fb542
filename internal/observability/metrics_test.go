package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/roboticsfoundry/physics-control-plane/model"
)

func TestUnaryServerInterceptorRecordsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewRPCCollector(reg)
	if err != nil {
		t.Fatalf("NewRPCCollector: %v", err)
	}

	interceptor := collector.UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/physics.v1.ObjectService/AddObject"}

	if _, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	}); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if _, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.InvalidArgument, "boom")
	}); err == nil {
		t.Fatal("expected handler error to propagate")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	counts := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != "rpc_requests_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["service"] != "ObjectService" || labels["method"] != "AddObject" {
				t.Errorf("unexpected labels: %v", labels)
			}
			counts[labels["code"]] = m.GetCounter().GetValue()
		}
	}

	if counts["OK"] != 1 {
		t.Errorf("OK count = %v, want 1", counts["OK"])
	}
	if counts["InvalidArgument"] != 1 {
		t.Errorf("InvalidArgument count = %v, want 1", counts["InvalidArgument"])
	}
}

func TestSetObjectCountsResetsAbsentKinds(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewRPCCollector(reg)
	if err != nil {
		t.Fatalf("NewRPCCollector: %v", err)
	}

	collector.SetObjectCounts(map[model.ObjectKind]int{
		model.KindCollision: 2,
		model.KindDynamic:   1,
	})
	collector.SetObjectCounts(map[model.ObjectKind]int{
		model.KindCollision: 2,
	})

	gauge := gaugeValues(t, reg, "world_objects")
	if gauge["collision"] != 2 {
		t.Errorf("collision gauge = %v, want 2", gauge["collision"])
	}
	if gauge["dynamic"] != 0 {
		t.Errorf("dynamic gauge = %v, want 0 after the kind emptied", gauge["dynamic"])
	}
}

func gaugeValues(t *testing.T, reg *prometheus.Registry, family string) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	values := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != family {
			continue
		}
		for _, m := range fam.GetMetric() {
			label := ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "kind" {
					label = lp.GetValue()
				}
			}
			values[label] = m.GetGauge().GetValue()
		}
	}
	return values
}

func TestNewRPCCollectorReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRPCCollector(reg)
	if err != nil {
		t.Fatalf("first NewRPCCollector: %v", err)
	}
	second, err := NewRPCCollector(reg)
	if err != nil {
		t.Fatalf("second NewRPCCollector: %v", err)
	}
	if first.RPCRequests != second.RPCRequests {
		t.Error("second collector did not reuse the registered counter vec")
	}
}

func TestSimCollectorObserveStep(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewSimCollector(reg)
	if err != nil {
		t.Fatalf("NewSimCollector: %v", err)
	}

	collector.ObserveStep(1 * time.Millisecond)
	collector.ObserveStep(2 * time.Millisecond)
	collector.SetRunning(true)
	collector.AddDrained(3)
	collector.AddDrained(-1)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	var steps, drained, running *dto.Metric
	for _, fam := range families {
		switch fam.GetName() {
		case "sim_steps_total":
			steps = fam.GetMetric()[0]
		case "sim_drained_bodies_total":
			drained = fam.GetMetric()[0]
		case "sim_loop_running":
			running = fam.GetMetric()[0]
		}
	}
	if steps == nil || steps.GetCounter().GetValue() != 2 {
		t.Errorf("sim_steps_total = %+v, want 2", steps)
	}
	if drained == nil || drained.GetCounter().GetValue() != 3 {
		t.Errorf("sim_drained_bodies_total = %+v, want 3", drained)
	}
	if running == nil || running.GetGauge().GetValue() != 1 {
		t.Errorf("sim_loop_running = %+v, want 1", running)
	}
}

func TestSplitMethod(t *testing.T) {
	cases := []struct {
		in      string
		service string
		method  string
	}{
		{"/physics.v1.ObjectService/AddObject", "ObjectService", "AddObject"},
		{"physics.v1.ObjectService/GetPosition", "ObjectService", "GetPosition"},
		{"", "unknown", "unknown"},
		{"/broken", "unknown", "unknown"},
	}
	for _, tc := range cases {
		service, method := SplitMethod(tc.in)
		if service != tc.service || method != tc.method {
			t.Errorf("SplitMethod(%q) = (%q, %q), want (%q, %q)", tc.in, service, method, tc.service, tc.method)
		}
	}
}
