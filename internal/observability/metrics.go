package observability

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// TransformCollector bundles Prometheus metrics for phase-history stages.
type TransformCollector struct {
	gatherer prometheus.Gatherer

	Stages         *prometheus.CounterVec
	StageDurations *prometheus.HistogramVec
	Samples        prometheus.Gauge
}

// NewTransformCollector registers transform metrics against reg, defaulting
// to the global Prometheus registry when nil. Registering twice against the
// same registry returns the existing collectors.
func NewTransformCollector(reg prometheus.Registerer) (*TransformCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	stages, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sar_stages_total",
		Help: "Total number of executed phase-history stages, labeled by stage and result.",
	}, []string{"stage", "result"}), "sar_stages_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sar_stage_duration_seconds",
		Help:    "Phase-history stage latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"stage"}), "sar_stage_duration_seconds")
	if err != nil {
		return nil, err
	}

	samples, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sar_phase_history_samples",
		Help: "Number of complex samples in the most recent phase history.",
	}), "sar_phase_history_samples")
	if err != nil {
		return nil, err
	}

	return &TransformCollector{
		gatherer:       gatherer,
		Stages:         stages,
		StageDurations: durations,
		Samples:        samples,
	}, nil
}

// ObserveStage records one stage execution.
func (c *TransformCollector) ObserveStage(stage string, d time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Stages.WithLabelValues(stage, result).Inc()
	c.StageDurations.WithLabelValues(stage).Observe(d.Seconds())
}

// SetPhaseHistorySize records the dimensions of the latest phase history.
func (c *TransformCollector) SetPhaseHistorySize(npulses, nsamples int) {
	if c == nil {
		return
	}
	c.Samples.Set(float64(npulses * nsamples))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *TransformCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gathererOrDefault(), promhttp.HandlerOpts{})
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (c *TransformCollector) WriteText(w io.Writer) error {
	families, err := c.gathererOrDefault().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func (c *TransformCollector) gathererOrDefault() prometheus.Gatherer {
	if c == nil || c.gatherer == nil {
		return prometheus.DefaultGatherer
	}
	return c.gatherer
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
