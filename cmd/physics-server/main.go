package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/roboticsfoundry/physics-control-plane/engine/memengine"
	"github.com/roboticsfoundry/physics-control-plane/internal/config"
	"github.com/roboticsfoundry/physics-control-plane/internal/logging"
	"github.com/roboticsfoundry/physics-control-plane/internal/objectapi"
	"github.com/roboticsfoundry/physics-control-plane/internal/observability"
	sim "github.com/roboticsfoundry/physics-control-plane/internal/sim/state"
	"github.com/roboticsfoundry/physics-control-plane/model"
	"github.com/roboticsfoundry/physics-control-plane/simloop"
)

// Config carries everything run needs; main fills it from flags so tests can
// construct it directly.
type Config struct {
	ListenAddress  string
	MetricsAddress string
	ScenePath      string
	TickInterval   time.Duration
	StartPaused    bool
	GravityZ       float64
	Timestep       float64
	LogLevel       string
	LogFormat      string
}

func main() {
	grpcAddr := flag.String("grpc-addr", ":50051", "TCP address the object service gRPC server listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics (empty disables)")
	scenePath := flag.String("scene", "", "Path to a YAML scene config loaded at startup")
	tick := flag.Duration("tick", simloop.DefaultTick, "Simulation loop interval")
	startPaused := flag.Bool("start-paused", false, "Construct the loop paused; objects keep their initial poses until resumed")
	gravityZ := flag.Float64("gravity-z", -9.81, "Constant Z acceleration applied to dynamic bodies")
	timestep := flag.Float64("timestep", 1.0/240.0, "Integration timestep in seconds per step")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	logFormat := flag.String("log-format", "json", "Log format: json|text")
	flag.Parse()

	cfg := Config{
		ListenAddress:  *grpcAddr,
		MetricsAddress: *metricsAddr,
		ScenePath:      *scenePath,
		TickInterval:   *tick,
		StartPaused:    *startPaused,
		GravityZ:       *gravityZ,
		Timestep:       *timestep,
		LogLevel:       *logLevel,
		LogFormat:      *logFormat,
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		log.Error(ctx, "failed to listen for gRPC",
			logging.String("addr", cfg.ListenAddress), logging.Err(err))
		os.Exit(1)
	}

	if err := run(ctx, cfg, log, lis); err != nil {
		log.Error(ctx, "server exited", logging.Err(err))
		os.Exit(1)
	}
}

// run builds the world, serves the object service on lis, and blocks until
// ctx is cancelled. On the way out it stops the loop, drains the registry,
// and releases the listener.
func run(ctx context.Context, cfg Config, log logging.Logger, lis net.Listener) error {
	collector, err := observability.NewRPCCollector(nil)
	if err != nil {
		return fmt.Errorf("initialize rpc metrics: %w", err)
	}
	simCollector, err := observability.NewSimCollector(nil)
	if err != nil {
		return fmt.Errorf("initialize sim metrics: %w", err)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	metricsSrv := serveMetrics(cfg.MetricsAddress, collector, log)

	eng := memengine.New(
		memengine.WithGravity(model.Vec3{Z: cfg.GravityZ}),
		memengine.WithTimestep(cfg.Timestep),
	)
	state := sim.NewWorldState(eng, log, sim.WithMetricsRecorder(collector))

	if cfg.ScenePath != "" {
		if err := loadScene(ctx, state, cfg.ScenePath, log); err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			objectapi.RequestIDUnaryServerInterceptor(log),
			objectapi.TracingUnaryServerInterceptor(),
			collector.UnaryServerInterceptor(),
		),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)
	objectapi.RegisterObjectServiceServer(server, objectapi.NewObjectService(state, nil, log))

	stepperOpts := []simloop.Option{
		simloop.WithTick(cfg.TickInterval),
		simloop.WithObserver(simCollector),
	}
	if cfg.StartPaused {
		stepperOpts = append(stepperOpts, simloop.StartPaused())
	}
	stepper := simloop.New(state, log, stepperOpts...)

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = stepper.Run(loopCtx)
	}()

	log.Info(ctx, "starting object service gRPC server",
		logging.String("addr", lis.Addr().String()),
		logging.String("tick", cfg.TickInterval.String()),
		logging.Any("start_paused", cfg.StartPaused),
	)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(lis)
	}()

	select {
	case err := <-serveErr:
		stopLoop()
		<-loopDone
		return fmt.Errorf("grpc server: %w", err)
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down physics server")
	server.GracefulStop()
	stopLoop()
	<-loopDone

	drained := state.Drain()
	simCollector.AddDrained(drained)
	log.Info(context.Background(), "drained world registry", logging.Int("objects", drained))

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}

func serveMetrics(addr string, collector *observability.RPCCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

// loadScene pre-populates the world from a scene config: per-kind lists of
// object config files plus the optional inline sensor block. A bad entry
// fails startup rather than leaving a partially described world.
func loadScene(ctx context.Context, state *sim.WorldState, path string, log logging.Logger) error {
	scene, err := config.LoadScene(path)
	if err != nil {
		return err
	}

	groups := []struct {
		kind  model.ObjectKind
		files []string
	}{
		{model.KindVisual, scene.VisualObjects},
		{model.KindCollision, scene.CollisionObjects},
		{model.KindDynamic, scene.DynamicObjects},
		{model.KindRobot, scene.Robots},
		{model.KindSoftBody, scene.SoftObjects},
		{model.KindURDF, scene.URDFs},
	}

	loaded := 0
	for _, group := range groups {
		for _, file := range group.files {
			cfg, err := config.LoadObject(file)
			if err != nil {
				return err
			}
			name, err := state.AddObject(cfg, group.kind)
			if err != nil {
				return fmt.Errorf("add %s object from %q: %w", group.kind, file, err)
			}
			log.Debug(ctx, "loaded scene object",
				logging.String("name", name),
				logging.String("kind", group.kind.String()),
				logging.String("file", file),
			)
			loaded++
		}
	}

	if scene.RGBDSensor != nil {
		name, err := state.AddObject(scene.RGBDSensor, model.KindSensor)
		if err != nil {
			return fmt.Errorf("add rgbd sensor: %w", err)
		}
		log.Debug(ctx, "loaded scene sensor", logging.String("name", name))
		loaded++
	}

	log.Info(ctx, "scene loaded",
		logging.String("path", path),
		logging.Int("objects", loaded),
	)
	return nil
}
