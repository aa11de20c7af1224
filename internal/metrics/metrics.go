package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for omsctl.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Backend API metrics
	APICalls   *prometheus.CounterVec
	APILatency *prometheus.HistogramVec

	// Session metrics
	Logins         *prometheus.CounterVec
	TokenRefreshes *prometheus.CounterVec
	Logouts        prometheus.Counter

	// Navigation metrics
	Navigations    *prometheus.CounterVec
	GuardRedirects *prometheus.CounterVec

	// Command metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec

	// Errors by structured error code
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		APICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omsctl_api_calls_total",
				Help: "Total number of backend API calls",
			},
			[]string{"method", "endpoint", "status"},
		),
		APILatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omsctl_api_latency_seconds",
				Help:    "Backend API call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method", "endpoint"},
		),

		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omsctl_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"success"},
		),
		TokenRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omsctl_token_refreshes_total",
				Help: "Total number of access token refresh exchanges",
			},
			[]string{"success"},
		),
		Logouts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "omsctl_logouts_total",
				Help: "Total number of logouts, including forced ones",
			},
		),

		Navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omsctl_navigations_total",
				Help: "Total number of resolved navigations by final route",
			},
			[]string{"route"},
		),
		GuardRedirects: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omsctl_guard_redirects_total",
				Help: "Total number of router guard redirects",
			},
			[]string{"from", "to", "reason"},
		),

		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omsctl_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omsctl_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omsctl_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code", "component"},
		),
	}
}

// RecordAPICall records one backend round trip. status is 0 for transport failures.
func (m *Metrics) RecordAPICall(method, endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.APICalls.WithLabelValues(method, endpoint, label).Inc()
	m.APILatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// RecordLogin records a login attempt
func (m *Metrics) RecordLogin(success bool) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordRefresh records a refresh-token exchange
func (m *Metrics) RecordRefresh(success bool) {
	if m == nil {
		return
	}
	m.TokenRefreshes.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordLogout records a logout
func (m *Metrics) RecordLogout() {
	if m == nil {
		return
	}
	m.Logouts.Inc()
}

// RecordNavigation records the route a navigation settled on
func (m *Metrics) RecordNavigation(route string) {
	if m == nil {
		return
	}
	m.Navigations.WithLabelValues(route).Inc()
}

// RecordRedirect records one guard redirect hop
func (m *Metrics) RecordRedirect(from, to, reason string) {
	if m == nil {
		return
	}
	m.GuardRedirects.WithLabelValues(from, to, reason).Inc()
}

// RecordCommand records a finished command
func (m *Metrics) RecordCommand(command string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(success)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// RecordError records an error by code
func (m *Metrics) RecordError(code, component string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(code, component).Inc()
}
