package monitoring

import (
	"context"
)

type CheckoutMetrics struct{}

func NewCheckoutMetrics() *CheckoutMetrics {
	return &CheckoutMetrics{}
}

func (m *CheckoutMetrics) RecordAttempt() {
	CheckoutAttemptsTotal.Inc()
}

func (m *CheckoutMetrics) RecordSuccess() {
	CheckoutSuccessTotal.Inc()
}

func (m *CheckoutMetrics) RecordFailure(reason string) {
	CheckoutFailureTotal.WithLabelValues(reason).Inc()
}

type BusinessMetricsMiddleware struct{}

func NewBusinessMetricsMiddleware() *BusinessMetricsMiddleware {
	return &BusinessMetricsMiddleware{}
}

// WrapPlaceOrder records attempt/success/failure around an order placement.
// classify turns an error into a low-cardinality reason label.
func (m *BusinessMetricsMiddleware) WrapPlaceOrder(
	next func(ctx context.Context) (string, error),
	classify func(err error) string,
) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		metrics := NewCheckoutMetrics()
		metrics.RecordAttempt()

		orderID, err := next(ctx)
		if err != nil {
			metrics.RecordFailure(classify(err))
			return "", err
		}

		metrics.RecordSuccess()
		return orderID, nil
	}
}
