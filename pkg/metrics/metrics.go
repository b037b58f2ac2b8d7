// Package metrics records Prometheus metrics for seating runs.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

const namespace = "seat_planner"

// Recorder holds the run metrics, registered on its own registry
type Recorder struct {
	Registry *prometheus.Registry

	RecordsTotal       prometheus.Counter
	OutcomesTotal      *prometheus.CounterVec
	DataErrorsTotal    *prometheus.CounterVec
	UnassignedByQueue  *prometheus.GaugeVec
	OverflowPlaced     *prometheus.GaugeVec
	ValidationFailures prometheus.Gauge
	RunDuration        prometheus.Histogram
	DateDuration       prometheus.Histogram
}

// NewRecorder creates a recorder with a fresh registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		Registry: registry,

		RecordsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Total roster records processed",
		}),
		OutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Records by allocation outcome",
		}, []string{"outcome"}),
		DataErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_errors_total",
			Help:      "Rejected records by error kind",
		}, []string{"kind"}),
		UnassignedByQueue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unassigned_agents",
			Help:      "Scheduled agents left without a seat in the last run, by queue",
		}, []string{"queue"}),
		OverflowPlaced: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overflow_agents",
			Help:      "Agents seated in their queue's overflow area in the last run, summed over dates",
		}, []string{"queue"}),
		ValidationFailures: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "validation_failures",
			Help:      "Seat invariant violations found in the last run",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Time taken to allocate the whole horizon",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		DateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "date_duration_seconds",
			Help:      "Time taken to allocate a single date",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

// ObserveParse records parsed records and their data errors
func (r *Recorder) ObserveParse(parsed []model.ParsedRecord) {
	r.RecordsTotal.Add(float64(len(parsed)))
	for _, p := range parsed {
		if p.Err != nil {
			r.DataErrorsTotal.WithLabelValues(p.Err.Kind()).Inc()
		}
	}
}

// ObserveResult records the outcome of a horizon run
func (r *Recorder) ObserveResult(result *allocator.Result, elapsed time.Duration) {
	r.RunDuration.Observe(elapsed.Seconds())

	for outcome, count := range result.Counts() {
		r.OutcomesTotal.WithLabelValues(string(outcome)).Add(float64(count))
	}

	r.UnassignedByQueue.Reset()
	for _, a := range result.Assignments {
		if a.Outcome == allocator.OutcomeUnassigned {
			r.UnassignedByQueue.WithLabelValues(string(a.Record.Queue)).Inc()
		}
	}

	r.OverflowPlaced.Reset()
	for _, day := range result.Days {
		r.DateDuration.Observe(day.Elapsed.Seconds())
		for _, queue := range day.State.OverflowQueues() {
			_, placed := day.State.OverflowTarget(queue)
			r.OverflowPlaced.WithLabelValues(string(queue)).Add(float64(placed))
		}
	}

	r.ValidationFailures.Set(float64(len(result.ValidationErrors)))
}

// Push sends the registry contents to a Prometheus Pushgateway
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
