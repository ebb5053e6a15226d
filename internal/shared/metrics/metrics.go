package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "forms"

var (
	contactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_submissions_total",
		Help:      "Contact form submissions by result.",
	}, []string{"result"})

	applicationSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_submissions_total",
		Help:      "Job application submissions by result.",
	}, []string{"result"})

	emails = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Outbound emails by kind and result.",
	}, []string{"kind", "result"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method", "route", "status"})
)

// Result labels.
const (
	ResultOK         = "ok"
	ResultInvalid    = "invalid"
	ResultStoreError = "store_error"
	ResultSent       = "sent"
	ResultFailed     = "failed"
)

// IncContactSubmission counts a contact form outcome.
func IncContactSubmission(result string) {
	contactSubmissions.WithLabelValues(result).Inc()
}

// IncApplicationSubmission counts an application form outcome.
func IncApplicationSubmission(result string) {
	applicationSubmissions.WithLabelValues(result).Inc()
}

// IncEmail counts an outbound email attempt.
func IncEmail(kind string, sent bool) {
	result := ResultSent
	if !sent {
		result = ResultFailed
	}
	emails.WithLabelValues(kind, result).Inc()
}

// ObserveRequest records a request latency sample.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
