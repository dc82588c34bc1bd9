package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/adapter"
	"vendor-subscription-checkout/internal/domain/ports/repository"
	"vendor-subscription-checkout/internal/infra/logging"
	"vendor-subscription-checkout/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// WebhookOutcome is how a verified event was handled.
type WebhookOutcome string

const (
	OutcomeActivated     WebhookOutcome = "activated"
	OutcomePaymentFailed WebhookOutcome = "payment_failed"
	OutcomeIgnored       WebhookOutcome = "ignored"
)

// Compile-time check
var _ WebhookUseCase = (*webhookUC)(nil)

type WebhookUseCase interface {
	// Handle verifies payload against signatureHeader and applies the event.
	// Errors: domain.ErrInvalidSignature, domain.ErrInvalidPayload, or a store failure.
	Handle(ctx context.Context, payload []byte, signatureHeader string) (WebhookOutcome, error)
}

type webhookUC struct {
	gateway adapter.PaymentGateway
	subs    repository.SubscriptionRepository
	now     func() time.Time

	log *zerolog.Logger
}

func NewWebhookUseCase(gateway adapter.PaymentGateway, subs repository.SubscriptionRepository, logger *zerolog.Logger) *webhookUC {
	return &webhookUC{gateway: gateway, subs: subs, now: time.Now, log: logger}
}

func (u *webhookUC) Handle(ctx context.Context, payload []byte, signatureHeader string) (WebhookOutcome, error) {
	l := logging.With(ctx, u.log)

	ev, err := u.gateway.ParseWebhookEvent(payload, signatureHeader)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			metrics.IncWebhookEvent("", "invalid_signature")
			l.Warn().Err(err).Msg("webhook signature verification failed")
		default:
			metrics.IncWebhookEvent("", "invalid_payload")
			l.Warn().Err(err).Msg("webhook payload rejected")
		}
		return "", err
	}

	ctx = logging.WithEventID(ctx, ev.EventID())
	l = logging.With(ctx, u.log)

	switch e := ev.(type) {
	case *model.CheckoutSessionCompleted:
		sub := &model.Subscription{
			SessionID:   e.SessionID,
			UserID:      e.SubscriberID(),
			RawSession:  e.Raw,
			ActivatedAt: u.now().UTC(),
		}
		if err := u.subs.Put(ctx, sub); err != nil {
			metrics.IncWebhookEvent(string(e.Type()), "store_error")
			l.Error().Err(err).Str("session_id", e.SessionID).Msg("failed to record subscription")
			return "", fmt.Errorf("record subscription %s: %w", e.SessionID, err)
		}
		metrics.IncWebhookEvent(string(e.Type()), string(OutcomeActivated))
		l.Info().Str("session_id", e.SessionID).Str("user_id", sub.UserID).Msg("subscription activated")
		return OutcomeActivated, nil

	case *model.PaymentIntentFailed:
		metrics.IncWebhookEvent(string(e.Type()), string(OutcomePaymentFailed))
		l.Error().Str("payment_intent_id", e.PaymentIntentID).Str("reason", e.Reason).Msg("payment failed")
		return OutcomePaymentFailed, nil

	default:
		metrics.IncWebhookEvent(string(ev.Type()), string(OutcomeIgnored))
		l.Debug().Str("type", string(ev.Type())).Msg("webhook event ignored")
		return OutcomeIgnored, nil
	}
}
