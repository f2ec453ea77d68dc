package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnnouncementsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classifieds_announcements_created_total",
		Help: "Total announcements created",
	})

	AnnouncementsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classifieds_announcements_updated_total",
		Help: "Total announcements updated",
	})

	AnnouncementsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classifieds_announcements_deleted_total",
		Help: "Total announcements deleted by their owner",
	})

	AnnouncementsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classifieds_announcements_expired_total",
		Help: "Total announcements removed by the retention sweep",
	})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classifieds_notification_failures_total",
		Help: "Total confirmation deliveries that failed",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "classifieds_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unknown"
	}
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}
