package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dessert_review"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	pointMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "point",
			Name:      "mutations_total",
			Help:      "Point balance mutations by direction and source type.",
		},
		[]string{"direction", "point_type"},
	)

	pointRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "point",
			Name:      "rejections_total",
			Help:      "Point mutations rejected before touching the balance.",
		},
		[]string{"reason"},
	)

	feedCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "cache_lookups_total",
			Help:      "Category recommendation cache lookups.",
		},
		[]string{"result"},
	)

	imageCleanupRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "image_cleanup_runs_total",
			Help:      "Hidden review image cleanup runs.",
		},
		[]string{"success"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		pointMutations,
		pointRejections,
		feedCacheLookups,
		imageCleanupRuns,
	)
}

// Handler exposes the registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordPointMutation counts a committed balance change.
func RecordPointMutation(delta int, pointType string) {
	direction := "accrue"
	if delta < 0 {
		direction = "recall"
	}
	pointMutations.WithLabelValues(direction, pointType).Inc()
}

// RecordPointRejection counts a refused balance change.
func RecordPointRejection(reason string) {
	pointRejections.WithLabelValues(reason).Inc()
}

// RecordFeedCache counts a recommendation cache hit or miss.
func RecordFeedCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	feedCacheLookups.WithLabelValues(result).Inc()
}

// RecordImageCleanup counts a scheduler run.
func RecordImageCleanup(success bool) {
	imageCleanupRuns.WithLabelValues(strconv.FormatBool(success)).Inc()
}
