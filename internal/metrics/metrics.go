package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clawboard/internal/model"
)

// Metrics is the collection of Prometheus instruments the dashboard
// exports.
type Metrics struct {
	// HTTP API
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Gateway polling
	FetchesTotal  *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	GatewayUp     prometheus.Gauge

	// Derived views
	AgentStatus     *prometheus.GaugeVec
	ActivityEntries prometheus.Gauge
	TasksByStatus   *prometheus.GaugeVec
}

// New creates the metric set registered against reg. Passing nil uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clawboard_http_requests_total",
				Help: "Total number of HTTP API requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clawboard_http_request_duration_seconds",
				Help:    "Duration of HTTP API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		FetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clawboard_gateway_fetches_total",
				Help: "Total gateway fetches by result",
			},
			[]string{"result"},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "clawboard_gateway_fetch_duration_seconds",
				Help:    "Duration of one gateway refresh in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		GatewayUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "clawboard_gateway_up",
				Help: "Whether the last gateway fetch succeeded (1) or not (0)",
			},
		),
		AgentStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clawboard_agent_status",
				Help: "Derived agent status (1 for the agent's current status label)",
			},
			[]string{"agent", "status"},
		),
		ActivityEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "clawboard_activity_entries",
				Help: "Total aggregated activity log entries before display truncation",
			},
		),
		TasksByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clawboard_tasks",
				Help: "Tracked tasks per kanban column",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.FetchesTotal,
		m.FetchDuration,
		m.GatewayUp,
		m.AgentStatus,
		m.ActivityEntries,
		m.TasksByStatus,
	)
	return m
}

// ObserveFetch records one refresh attempt.
func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	m.FetchDuration.Observe(d.Seconds())
	if err != nil {
		m.FetchesTotal.WithLabelValues("error").Inc()
		m.GatewayUp.Set(0)
		return
	}
	m.FetchesTotal.WithLabelValues("success").Inc()
	m.GatewayUp.Set(1)
}

// SetAgentStatuses republishes the per-agent status gauges. Every
// (agent, status) pair is written so stale labels drop to zero.
func (m *Metrics) SetAgentStatuses(statuses []model.AgentStatus) {
	states := []model.AgentState{model.StateActive, model.StateWorking, model.StateIdle, model.StateOffline}
	for _, s := range statuses {
		for _, state := range states {
			v := 0.0
			if s.Status == state {
				v = 1.0
			}
			m.AgentStatus.WithLabelValues(s.ID, string(state)).Set(v)
		}
	}
}

// SetTaskCounts republishes the per-column task gauges.
func (m *Metrics) SetTaskCounts(tasks []model.Task) {
	counts := map[model.TaskStatus]int{}
	for _, t := range tasks {
		counts[t.Status]++
	}
	for _, status := range model.TaskStatuses {
		m.TasksByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}

// RequestTracking wraps an HTTP handler with request counting and
// latency observation.
func (m *Metrics) RequestTracking(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, http.StatusText(rw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
