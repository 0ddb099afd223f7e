package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/mechlab/internal/clock"
)

// Collector bundles the lab's Prometheus metrics. All methods are safe on a
// nil *Collector, so metrics can be switched off by passing nil around.
type Collector struct {
	gatherer prometheus.Gatherer

	Ticks      *prometheus.CounterVec
	TickDeltas *prometheus.HistogramVec
	Elapsed    *prometheus.GaugeVec
	Answers    *prometheus.CounterVec
	Challenges *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil. Registering twice against one registry reuses the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mechlab_clock_ticks_total",
		Help: "Clock ticks delivered, labeled by scenario.",
	}, []string{"scenario"}), "mechlab_clock_ticks_total")
	if err != nil {
		return nil, err
	}

	deltas := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mechlab_tick_delta_seconds",
		Help:    "Raw wall time between ticks.",
		Buckets: []float64{0.005, 0.01, 0.02, 0.033, 0.05, 0.1, 0.25, 1},
	}, []string{"scenario"})
	deltas, err = registerHistogramVec(reg, deltas, "mechlab_tick_delta_seconds")
	if err != nil {
		return nil, err
	}

	elapsed, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mechlab_scenario_elapsed_seconds",
		Help: "Simulation time of the scenario clock.",
	}, []string{"scenario"}), "mechlab_scenario_elapsed_seconds")
	if err != nil {
		return nil, err
	}

	answers, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mechlab_answers_total",
		Help: "Graded answers, labeled by scenario and verdict.",
	}, []string{"scenario", "verdict"}), "mechlab_answers_total")
	if err != nil {
		return nil, err
	}

	challenges, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mechlab_challenges_total",
		Help: "Generated challenges, labeled by target quantity.",
	}, []string{"target"}), "mechlab_challenges_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:   gatherer,
		Ticks:      ticks,
		TickDeltas: deltas,
		Elapsed:    elapsed,
		Answers:    answers,
		Challenges: challenges,
	}, nil
}

// ObserveTick records one delivered tick.
func (c *Collector) ObserveTick(scenario string, rawDelta, elapsed float64) {
	if c == nil {
		return
	}
	c.Ticks.WithLabelValues(scenario).Inc()
	c.TickDeltas.WithLabelValues(scenario).Observe(rawDelta)
	c.Elapsed.WithLabelValues(scenario).Set(elapsed)
}

// TickObserver adapts the collector to a clock.Loop observer. The loop does
// not report raw deltas, so only the tick count and elapsed time are kept.
func (c *Collector) TickObserver(scenario string) clock.Observer {
	return clock.ObserverFunc(func(elapsed float64, _ clock.Status) {
		if c == nil {
			return
		}
		c.Ticks.WithLabelValues(scenario).Inc()
		c.Elapsed.WithLabelValues(scenario).Set(elapsed)
	})
}

func (c *Collector) RecordAnswer(scenario string, correct bool) {
	if c == nil {
		return
	}
	verdict := "incorrect"
	if correct {
		verdict = "correct"
	}
	c.Answers.WithLabelValues(scenario, verdict).Inc()
}

func (c *Collector) RecordChallenge(target string) {
	if c == nil {
		return
	}
	c.Challenges.WithLabelValues(target).Inc()
}

// WriteTextfile writes the current metrics in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
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

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
