package payment

import (
	"encoding/json"
	"fmt"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"

	"github.com/stripe/stripe-go/v82"
)

// decodeEvent maps a verified Stripe event onto the domain event union.
func decodeEvent(ev stripe.Event) (model.WebhookEvent, error) {
	switch model.EventType(ev.Type) {
	case model.EventCheckoutSessionCompleted:
		if ev.Data == nil || len(ev.Data.Raw) == 0 {
			return nil, fmt.Errorf("%w: %s without data object", domain.ErrInvalidPayload, ev.Type)
		}
		var s stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: decode checkout session: %v", domain.ErrInvalidPayload, err)
		}
		if s.ID == "" {
			return nil, fmt.Errorf("%w: checkout session without id", domain.ErrInvalidPayload)
		}
		out := &model.CheckoutSessionCompleted{
			ID:                ev.ID,
			SessionID:         s.ID,
			ClientReferenceID: s.ClientReferenceID,
			Raw:               append([]byte(nil), ev.Data.Raw...),
		}
		if s.Customer != nil {
			out.CustomerID = s.Customer.ID
		}
		return out, nil

	case model.EventPaymentIntentFailed:
		if ev.Data == nil || len(ev.Data.Raw) == 0 {
			return nil, fmt.Errorf("%w: %s without data object", domain.ErrInvalidPayload, ev.Type)
		}
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("%w: decode payment intent: %v", domain.ErrInvalidPayload, err)
		}
		out := &model.PaymentIntentFailed{ID: ev.ID, PaymentIntentID: pi.ID}
		if pi.LastPaymentError != nil {
			out.Reason = pi.LastPaymentError.Msg
		}
		return out, nil

	default:
		return &model.UnrecognizedEvent{ID: ev.ID, RawType: string(ev.Type)}, nil
	}
}
