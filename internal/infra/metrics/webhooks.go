package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(webhookEventsTotal) }

// Known event types keep their name; everything else collapses to "other"
// so the label stays bounded.
var knownEventTypes = map[string]struct{}{
	"checkout.session.completed":    {},
	"payment_intent.payment_failed": {},
}

var (
	// result: activated|payment_failed|ignored|invalid_signature|invalid_payload|store_error
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Inbound provider webhook deliveries by event type and handling result.",
		},
		[]string{"type", "result"},
	)
)

func IncWebhookEvent(eventType, result string) {
	t := norm(eventType)
	if t == "" {
		t = "unknown"
	} else if _, ok := knownEventTypes[t]; !ok {
		t = "other"
	}
	webhookEventsTotal.WithLabelValues(t, norm(result)).Inc()
}
