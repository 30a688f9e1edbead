package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Total number of cart mutations by operation",
		},
		[]string{"operation"},
	)

	CartPersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_persist_failures_total",
			Help: "Total number of failed cart writes to local storage",
		},
	)

	CartItemCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_item_count",
			Help: "Sum of quantities currently in the cart",
		},
	)

	CartSubtotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_subtotal",
			Help: "Current cart subtotal",
		},
	)

	CheckoutAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of order placement attempts",
		},
	)

	CheckoutSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Total number of orders accepted by the API",
		},
	)

	CheckoutFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Total number of failed order placements",
		},
		[]string{"reason"},
	)

	PromoApplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_applications_total",
			Help: "Total number of promo code applications by result",
		},
		[]string{"result"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of published domain events",
		},
		[]string{"transport", "result"},
	)
)

var (
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of requests to the storefront API in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "status_code"},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func TimeAPIRequest(operation string) func(statusCode string) {
	start := time.Now()
	return func(statusCode string) {
		APIRequestDuration.WithLabelValues(operation, statusCode).Observe(time.Since(start).Seconds())
	}
}

func RecordCartMutation(operation string) {
	CartMutationsTotal.WithLabelValues(operation).Inc()
}

func RecordCartPersistFailure() {
	CartPersistFailuresTotal.Inc()
}

func UpdateCartGauges(itemCount int, subtotal float64) {
	CartItemCount.Set(float64(itemCount))
	CartSubtotal.Set(subtotal)
}

func RecordPromoApplication(result string) {
	PromoApplicationsTotal.WithLabelValues(result).Inc()
}

func RecordEventPublished(transport string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsPublishedTotal.WithLabelValues(transport, result).Inc()
}
