package usecase

import (
	"context"
	"errors"
	"strings"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/adapter"
	"vendor-subscription-checkout/internal/infra/logging"
	"vendor-subscription-checkout/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// DefaultPlatformFeeBps is the platform cut (20%) in basis points.
const DefaultPlatformFeeBps int64 = 2000

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

type CheckoutUseCase interface {
	// CreateSession shapes a hosted payment session for req and forwards it to the gateway.
	// baseURL is scheme://host of the current request and prefixes the redirect URLs.
	CreateSession(ctx context.Context, req model.CheckoutRequest, baseURL string) (*model.CheckoutSession, error)
}

type checkoutUC struct {
	gateway adapter.PaymentGateway
	feeBps  int64
	dev     bool

	log *zerolog.Logger
}

func NewCheckoutUseCase(gateway adapter.PaymentGateway, feeBps int64, dev bool, logger *zerolog.Logger) *checkoutUC {
	if feeBps <= 0 {
		feeBps = DefaultPlatformFeeBps
	}
	return &checkoutUC{gateway: gateway, feeBps: feeBps, dev: dev, log: logger}
}

// ApplicationFee returns floor(amountCents * bps / 10000).
func ApplicationFee(amountCents, bps int64) int64 {
	p := amountCents * bps
	q := p / 10000
	if p%10000 != 0 && p < 0 {
		q--
	}
	return q
}

// SessionParams builds the provider request. No validation is done here;
// the provider rejects what it does not accept.
func (u *checkoutUC) SessionParams(req model.CheckoutRequest, baseURL string) model.CheckoutSessionParams {
	base := strings.TrimRight(baseURL, "/")
	return model.CheckoutSessionParams{
		ProductName:          "Subscription for " + req.UserID,
		Currency:             req.Currency,
		UnitAmountCents:      req.AmountCents,
		Quantity:             1,
		ApplicationFeeCents:  ApplicationFee(req.AmountCents, u.feeBps),
		DestinationAccountID: req.StripeAccountID,
		SuccessURL:           base + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:            base + "/cancel",
	}
}

func (u *checkoutUC) CreateSession(ctx context.Context, req model.CheckoutRequest, baseURL string) (*model.CheckoutSession, error) {
	l := logging.With(ctx, u.log)
	defer logging.TraceDuration(l, "CheckoutUC.CreateSession")()

	params := u.SessionParams(req, baseURL)
	session, err := u.gateway.CreateCheckoutSession(ctx, params)
	if err != nil {
		metrics.IncCheckoutSession("failed")
		l.Error().Err(err).
			Str("provider", u.gateway.Name()).
			Str("user_id", req.UserID).
			Str("destination", logging.Redact(req.StripeAccountID, u.dev)).
			Int64("amount_cents", req.AmountCents).
			Msg("checkout session creation failed")
		return nil, err
	}

	metrics.IncCheckoutSession("created")
	metrics.AddApplicationFee(params.Currency, params.ApplicationFeeCents)
	l.Info().
		Str("session_id", session.ID).
		Str("user_id", req.UserID).
		Int64("amount_cents", params.UnitAmountCents).
		Int64("application_fee_cents", params.ApplicationFeeCents).
		Msg("checkout session created")
	return session, nil
}

// FailureMessage is the caller-facing text for a CreateSession error.
func FailureMessage(err error) string {
	var pe *domain.ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return err.Error()
}
