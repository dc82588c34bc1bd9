package payment

import (
	"context"
	"fmt"
	"sync"

	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/adapter"

	"github.com/stripe/stripe-go/v82/webhook"
)

var _ adapter.PaymentGateway = (*NoopPaymentGateway)(nil)

// NoopPaymentGateway is a simple in-memory gateway to use in tests and local runs.
// Sessions never leave the process; webhooks are verified with the same Stripe
// signing scheme as the real gateway.
type NoopPaymentGateway struct {
	mu            sync.Mutex
	seq           int64
	webhookSecret string
	sessions      map[string]model.CheckoutSessionParams

	// FailWith makes CreateCheckoutSession return this error when set.
	FailWith error
}

func NewNoopPaymentGateway(webhookSecret string) *NoopPaymentGateway {
	return &NoopPaymentGateway{
		webhookSecret: webhookSecret,
		sessions:      make(map[string]model.CheckoutSessionParams),
	}
}

func (g *NoopPaymentGateway) Name() string { return "noop" }

func (g *NoopPaymentGateway) next() string {
	g.seq++
	return fmt.Sprintf("cs_noop_%d", g.seq)
}

func (g *NoopPaymentGateway) CreateCheckoutSession(ctx context.Context, p model.CheckoutSessionParams) (*model.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailWith != nil {
		return nil, g.FailWith
	}
	id := g.next()
	g.sessions[id] = p
	return &model.CheckoutSession{ID: id, URL: "https://example.test/pay/" + id}, nil
}

// Session returns the params a session was created with.
func (g *NoopPaymentGateway) Session(id string) (model.CheckoutSessionParams, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.sessions[id]
	return p, ok
}

func (g *NoopPaymentGateway) ParseWebhookEvent(payload []byte, signatureHeader string) (model.WebhookEvent, error) {
	return parseSignedEvent(payload, signatureHeader, g.webhookSecret, webhook.DefaultTolerance)
}
