package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planpilot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planpilot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Tool dispatch metrics
	toolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planpilot_tool_calls_total",
			Help: "Total number of tool invocations",
		},
		[]string{"tool", "status"},
	)

	toolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planpilot_tool_call_duration_seconds",
			Help:    "Tool invocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	// Agent metrics
	agentExecutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planpilot_agent_execution_duration_seconds",
			Help:    "Agent execution duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"agent"},
	)

	// Completion backend metrics
	llmRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planpilot_llm_requests_total",
			Help: "Total number of completion requests",
		},
		[]string{"model", "status"},
	)

	llmRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planpilot_llm_request_duration_seconds",
			Help:    "Completion request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	initOnce sync.Once
)

// InitMetrics registers all collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			toolCallsTotal,
			toolCallDuration,
			agentExecutionDuration,
			llmRequestsTotal,
			llmRequestDuration,
		)
	})
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordToolCall records one tool invocation with its outcome.
func RecordToolCall(tool, status string, duration time.Duration) {
	toolCallsTotal.WithLabelValues(tool, status).Inc()
	toolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordAgentExecution records one agent run.
func RecordAgentExecution(agent string, duration time.Duration) {
	agentExecutionDuration.WithLabelValues(agent).Observe(duration.Seconds())
}

// RecordLLMRequest records one completion request against the backend.
func RecordLLMRequest(model, status string, duration time.Duration) {
	llmRequestsTotal.WithLabelValues(model, status).Inc()
	llmRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}
