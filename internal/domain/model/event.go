package model

// EventType is the provider event type string.
type EventType string

const (
	EventCheckoutSessionCompleted EventType = "checkout.session.completed"
	EventPaymentIntentFailed      EventType = "payment_intent.payment_failed"
)

// WebhookEvent is a verified provider event. Concrete values are one of
// *CheckoutSessionCompleted, *PaymentIntentFailed or *UnrecognizedEvent.
type WebhookEvent interface {
	EventID() string
	Type() EventType
}

// CheckoutSessionCompleted reports a finished hosted checkout.
type CheckoutSessionCompleted struct {
	ID                string
	SessionID         string
	ClientReferenceID string
	CustomerID        string
	Raw               []byte
}

func (e *CheckoutSessionCompleted) EventID() string { return e.ID }
func (e *CheckoutSessionCompleted) Type() EventType { return EventCheckoutSessionCompleted }

// SubscriberID prefers the client reference and falls back to the customer.
func (e *CheckoutSessionCompleted) SubscriberID() string {
	if e.ClientReferenceID != "" {
		return e.ClientReferenceID
	}
	return e.CustomerID
}

// PaymentIntentFailed reports a declined or otherwise failed payment.
type PaymentIntentFailed struct {
	ID              string
	PaymentIntentID string
	Reason          string
}

func (e *PaymentIntentFailed) EventID() string { return e.ID }
func (e *PaymentIntentFailed) Type() EventType { return EventPaymentIntentFailed }

// UnrecognizedEvent is any event type this service does not act on.
type UnrecognizedEvent struct {
	ID      string
	RawType string
}

func (e *UnrecognizedEvent) EventID() string { return e.ID }
func (e *UnrecognizedEvent) Type() EventType { return EventType(e.RawType) }
