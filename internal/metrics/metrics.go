package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the portal's collectors on a private registry. A nil *Metrics is
// valid and records nothing, so packages can take one optionally.
type Metrics struct {
	registry           *prometheus.Registry
	guardDecisions     *prometheus.CounterVec
	sessionTransitions *prometheus.CounterVec
	backendRequests    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_guard_decisions_total",
			Help: "Route guard decisions by required role and outcome.",
		}, []string{"required_role", "outcome"}),
		sessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_session_transitions_total",
			Help: "Session state transitions by event.",
		}, []string{"event"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_backend_requests_total",
			Help: "Requests sent to the hospital backend by method and status code.",
		}, []string{"method", "status"}),
	}
	m.registry.MustRegister(
		m.guardDecisions,
		m.sessionTransitions,
		m.backendRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) GuardDecision(requiredRole, outcome string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(requiredRole, outcome).Inc()
}

func (m *Metrics) SessionTransition(event string) {
	if m == nil {
		return
	}
	m.sessionTransitions.WithLabelValues(event).Inc()
}

// BackendRequest records one backend call. A status of 0 means the request never got a response.
func (m *Metrics) BackendRequest(method string, status int) {
	if m == nil {
		return
	}
	label := strconv.Itoa(status)
	if status == 0 {
		label = "error"
	}
	m.backendRequests.WithLabelValues(method, label).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
