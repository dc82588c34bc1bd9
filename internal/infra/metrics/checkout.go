package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		checkoutSessionsTotal,
		checkoutApplicationFeeTotal,
	)
}

var (
	// result: created|failed
	checkoutSessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Checkout session requests forwarded to the payment provider, by result.",
		},
		[]string{"result"},
	)

	checkoutApplicationFeeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_application_fee_cents_total",
			Help: "Sum of platform application fees on created sessions, labeled by currency.",
		},
		[]string{"currency"},
	)
)

func IncCheckoutSession(result string) {
	checkoutSessionsTotal.WithLabelValues(norm(result)).Inc()
}

func AddApplicationFee(currency string, cents int64) {
	checkoutApplicationFeeTotal.WithLabelValues(norm(currency)).Add(float64(cents))
}
