package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/terraincognita07/steady/internal/services"
)

// Metrics owns a private registry per Handler.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	authRejections      *prometheus.CounterVec
	dashboardBuilds     *prometheus.CounterVec
	completionEstimates prometheus.Histogram
}

func NewMetrics() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		authRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_rejections_total",
				Help: "Total number of rejected authentication attempts",
			},
			[]string{"reason"},
		),
		dashboardBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "steady_dashboard_builds_total",
				Help: "Dashboard summaries served, by readiness label",
			},
			[]string{"readiness"},
		),
		completionEstimates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "steady_completion_probability",
				Help:    "Distribution of forecast completion probabilities",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
			},
		),
	}

	metrics.registry.MustRegister(
		metrics.requestsTotal,
		metrics.requestDuration,
		metrics.authRejections,
		metrics.dashboardBuilds,
		metrics.completionEstimates,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

// Middleware labels requests by route template, not raw path.
func (metrics *Metrics) Middleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	path := c.Route().Path
	if status == fiber.StatusNotFound && path == "/" {
		path = "unmatched"
	}
	metrics.requestsTotal.WithLabelValues(path, c.Method(), strconv.Itoa(status)).Inc()
	metrics.requestDuration.WithLabelValues(path, c.Method()).Observe(time.Since(start).Seconds())
	return err
}

func (metrics *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{}))
}

func (metrics *Metrics) authRejected(reason string) {
	metrics.authRejections.WithLabelValues(reason).Inc()
}

func (metrics *Metrics) dashboardBuilt(summary services.DashboardSummary) {
	metrics.dashboardBuilds.WithLabelValues(string(summary.ReadinessLabel)).Inc()
	metrics.completionEstimates.Observe(summary.CompletionProb)
}
