package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

var _ adapter.PaymentGateway = (*StripeGateway)(nil)

// StripeGateway implements adapter.PaymentGateway on top of stripe-go.
// Sessions are destination charges: the connected account receives the
// payment minus the application fee.
type StripeGateway struct {
	sessions      checkoutsession.Client
	webhookSecret string
	tolerance     time.Duration
}

// NewStripeGateway builds a gateway with its own backend so the API key is never
// set globally. apiURL overrides the Stripe API base (tests, stripe-mock).
func NewStripeGateway(secretKey, webhookSecret, apiURL string, logger *zerolog.Logger) (*StripeGateway, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("stripe secret key empty")
	}
	if strings.TrimSpace(webhookSecret) == "" {
		return nil, errors.New("stripe webhook secret empty")
	}
	if apiURL == "" {
		apiURL = stripe.APIURL
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(apiURL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     newStripeLogger(logger),
	})
	return &StripeGateway{
		sessions:      checkoutsession.Client{B: backend, Key: secretKey},
		webhookSecret: webhookSecret,
		tolerance:     webhook.DefaultTolerance,
	}, nil
}

func (g *StripeGateway) Name() string { return "stripe" }

// CreateCheckoutSession creates a hosted card payment session with a single line item.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p model.CheckoutSessionParams) (*model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductName),
					},
					UnitAmount: stripe.Int64(p.UnitAmountCents),
				},
				Quantity: stripe.Int64(p.Quantity),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(p.ApplicationFeeCents),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(p.DestinationAccountID),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return &model.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhookEvent verifies the Stripe-Signature header and decodes the event.
func (g *StripeGateway) ParseWebhookEvent(payload []byte, signatureHeader string) (model.WebhookEvent, error) {
	return parseSignedEvent(payload, signatureHeader, g.webhookSecret, g.tolerance)
}

func wrapStripeError(err error) error {
	msg := err.Error()
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		msg = se.Msg
	}
	return &domain.ProviderError{Provider: "stripe", Message: msg, Err: err}
}

// parseSignedEvent checks the signature before anything in the payload is trusted.
func parseSignedEvent(payload []byte, header, secret string, tolerance time.Duration) (model.WebhookEvent, error) {
	if strings.TrimSpace(header) == "" {
		return nil, fmt.Errorf("%w: missing signature header", domain.ErrInvalidSignature)
	}
	ev, err := webhook.ConstructEventWithOptions(payload, header, secret, webhook.ConstructEventOptions{
		Tolerance:                tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	return decodeEvent(ev)
}
