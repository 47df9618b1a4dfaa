package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	// Task engine metrics
	TasksSubmitted prometheus.Counter
	TasksCompleted *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec
	QueueDepth     prometheus.Gauge
	WorkersBusy    prometheus.Gauge
	TasksEvicted   prometheus.Counter

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	startTime time.Time
	Uptime    prometheus.GaugeFunc
}

// NewMetrics creates a new metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		TasksSubmitted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "filedeck_tasks_submitted_total",
				Help: "Total number of tasks submitted to the operation manager",
			},
		),
		TasksCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filedeck_tasks_completed_total",
				Help: "Total number of tasks reaching a terminal state",
			},
			[]string{"outcome"},
		),
		TaskDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filedeck_task_duration_seconds",
				Help:    "Task execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "filedeck_task_queue_depth",
				Help: "Number of tasks waiting for a worker",
			},
		),
		WorkersBusy: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "filedeck_workers_busy",
				Help: "Number of workers currently executing a task",
			},
		),
		TasksEvicted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "filedeck_tasks_evicted_total",
				Help: "Total number of abandoned terminal tasks swept from the registry",
			},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filedeck_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filedeck_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
	}

	m.Uptime = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "filedeck_uptime_seconds",
			Help: "Time since process start in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	reg.MustRegister(
		m.TasksSubmitted,
		m.TasksCompleted,
		m.TaskDuration,
		m.QueueDepth,
		m.WorkersBusy,
		m.TasksEvicted,
		m.RequestsTotal,
		m.RequestDuration,
		m.Uptime,
	)

	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordSubmission records one task submission.
func (m *Metrics) RecordSubmission() {
	m.TasksSubmitted.Inc()
}

// RecordCompletion records a terminal outcome ("success", "error", "timeout",
// "cancelled") and the execution duration for the given operation kind.
func (m *Metrics) RecordCompletion(outcome, operation string, duration time.Duration) {
	m.TasksCompleted.WithLabelValues(outcome).Inc()
	m.TaskDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEviction records one registry sweep eviction.
func (m *Metrics) RecordEviction() {
	m.TasksEvicted.Inc()
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
