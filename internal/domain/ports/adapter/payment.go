package adapter

import (
	"context"

	"vendor-subscription-checkout/internal/domain/model"
)

// PaymentGateway is the hex port for the payment provider.
type PaymentGateway interface {
	Name() string

	// CreateCheckoutSession requests a hosted checkout session with destination fee routing.
	CreateCheckoutSession(ctx context.Context, params model.CheckoutSessionParams) (*model.CheckoutSession, error)

	// ParseWebhookEvent verifies the signature header against the raw payload and only then
	// decodes the event. Returns domain.ErrInvalidSignature when verification fails and
	// domain.ErrInvalidPayload when a recognised event cannot be decoded.
	ParseWebhookEvent(payload []byte, signatureHeader string) (model.WebhookEvent, error)
}
