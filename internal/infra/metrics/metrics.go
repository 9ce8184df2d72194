package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "table_booking"

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_created_total",
			Help:      "Count of bookings created by booking mode.",
		},
		[]string{"mode"},
	)

	bookingRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejected_total",
			Help:      "Count of booking attempts rejected by reason.",
		},
		[]string{"reason"},
	)

	txRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retry_total",
			Help:      "Count of write transactions re-run after a retryable Postgres error.",
		},
		[]string{"code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingRejected, txRetries, httpDuration)
	})
}

func IncTxRetry(code string) {
	txRetries.WithLabelValues(code).Inc()
}

func ObserveHTTP(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// Recorder feeds the usecase counters into Prometheus.
type Recorder struct{}

func NewRecorder() *Recorder {
	Register()
	return &Recorder{}
}

func (Recorder) BookingCreated(mode string) {
	bookingCreated.WithLabelValues(mode).Inc()
}

func (Recorder) BookingRejected(reason string) {
	bookingRejected.WithLabelValues(reason).Inc()
}
