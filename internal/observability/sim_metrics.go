package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimCollector exposes simulation-loop Prometheus metrics.
type SimCollector struct {
	gatherer prometheus.Gatherer

	StepsTotal    prometheus.Counter
	StepDuration  prometheus.Histogram
	LoopRunning   prometheus.Gauge
	DrainedBodies prometheus.Counter
}

// NewSimCollector registers simulation-loop metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	steps := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_steps_total",
		Help: "Cumulative number of simulation steps executed.",
	})
	steps, err := registerCounter(reg, steps, "sim_steps_total")
	if err != nil {
		return nil, err
	}

	stepDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_step_duration_seconds",
		Help:    "Wall-clock duration of one simulation step, including the time spent waiting for the world lock.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})
	stepDuration, err = registerHistogram(reg, stepDuration, "sim_step_duration_seconds")
	if err != nil {
		return nil, err
	}

	running := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_loop_running",
		Help: "Whether the simulation loop is currently stepping (1) or paused/stopped (0).",
	})
	running, err = registerGauge(reg, running, "sim_loop_running")
	if err != nil {
		return nil, err
	}

	drained := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_drained_bodies_total",
		Help: "Cumulative number of objects destroyed by shutdown drains.",
	})
	drained, err = registerCounter(reg, drained, "sim_drained_bodies_total")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:      gatherer,
		StepsTotal:    steps,
		StepDuration:  stepDuration,
		LoopRunning:   running,
		DrainedBodies: drained,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SimCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveStep records one executed step and its duration.
func (c *SimCollector) ObserveStep(d time.Duration) {
	if c == nil {
		return
	}
	if c.StepsTotal != nil {
		c.StepsTotal.Inc()
	}
	if c.StepDuration != nil {
		c.StepDuration.Observe(d.Seconds())
	}
}

// SetRunning updates the loop-running gauge.
func (c *SimCollector) SetRunning(running bool) {
	if c == nil || c.LoopRunning == nil {
		return
	}
	if running {
		c.LoopRunning.Set(1)
	} else {
		c.LoopRunning.Set(0)
	}
}

// AddDrained records objects destroyed by a shutdown drain.
func (c *SimCollector) AddDrained(count int) {
	if c == nil || c.DrainedBodies == nil || count <= 0 {
		return
	}
	c.DrainedBodies.Add(float64(count))
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
