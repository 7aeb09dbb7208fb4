// Package observability wires prometheus metrics and otel tracing for the simulations
package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Simulation labels
const (
	SimOrrery    = "orrery"
	SimThreeBody = "threebody"
)

// Collector bundles the simulation's Prometheus metrics
// A nil *Collector is valid and records nothing
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks             *prometheus.CounterVec
	TickDuration      *prometheus.HistogramVec
	SoftenedPairs     prometheus.Counter
	TourTransitions   *prometheus.CounterVec
	Commands          *prometheus.CounterVec
	TimeScale         prometheus.Gauge
	Bodies            prometheus.Gauge
	MomentumMagnitude prometheus.Gauge
}

// NewCollector registers simulation metrics against the provided registerer,
// defaulting to the global registry when nil
// Registering twice on the same registry returns the existing collectors
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_ticks_total",
		Help: "Total number of simulation ticks, labeled by simulation.",
	}, []string{"sim"}), "orrery_ticks_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orrery_tick_duration_seconds",
		Help:    "Wall time spent in one simulation tick.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
	}, []string{"sim"}), "orrery_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	softened, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_softened_pairs_total",
		Help: "Body pairs skipped because their separation was under the softening threshold.",
	}), "orrery_softened_pairs_total")
	if err != nil {
		return nil, err
	}

	transitions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_tour_transitions_total",
		Help: "Guided tour state transitions, labeled by source and target state.",
	}, []string{"from", "to"}), "orrery_tour_transitions_total")
	if err != nil {
		return nil, err
	}

	commands, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_commands_total",
		Help: "User commands applied, labeled by command type.",
	}, []string{"type"}), "orrery_commands_total")
	if err != nil {
		return nil, err
	}

	timeScale, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_time_scale",
		Help: "Current solar-system time scale or three-body speed.",
	}), "orrery_time_scale")
	if err != nil {
		return nil, err
	}

	bodies, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_bodies",
		Help: "Number of simulated bodies.",
	}), "orrery_bodies")
	if err != nil {
		return nil, err
	}

	momentum, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_momentum_magnitude",
		Help: "Magnitude of the three-body system's total linear momentum.",
	}), "orrery_momentum_magnitude")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		Ticks:             ticks,
		TickDuration:      durations,
		SoftenedPairs:     softened,
		TourTransitions:   transitions,
		Commands:          commands,
		TimeScale:         timeScale,
		Bodies:            bodies,
		MomentumMagnitude: momentum,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveTick counts one tick and records its duration
func (c *Collector) ObserveTick(sim string, d time.Duration) {
	if c == nil {
		return
	}
	c.Ticks.WithLabelValues(sim).Inc()
	c.TickDuration.WithLabelValues(sim).Observe(d.Seconds())
}

// AddSoftened adds skipped pairs from one integrator step
func (c *Collector) AddSoftened(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.SoftenedPairs.Add(float64(n))
}

// IncTourTransition counts one tour state change
func (c *Collector) IncTourTransition(from, to string) {
	if c == nil {
		return
	}
	c.TourTransitions.WithLabelValues(from, to).Inc()
}

// IncCommand counts one applied command
func (c *Collector) IncCommand(kind string) {
	if c == nil {
		return
	}
	c.Commands.WithLabelValues(kind).Inc()
}

// SetTimeScale updates the time scale gauge
func (c *Collector) SetTimeScale(v float64) {
	if c == nil {
		return
	}
	c.TimeScale.Set(v)
}

// SetBodies updates the body count gauge
func (c *Collector) SetBodies(n int) {
	if c == nil {
		return
	}
	c.Bodies.Set(float64(n))
}

// SetMomentum updates the momentum magnitude gauge
func (c *Collector) SetMomentum(v float64) {
	if c == nil {
		return
	}
	c.MomentumMagnitude.Set(v)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
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
