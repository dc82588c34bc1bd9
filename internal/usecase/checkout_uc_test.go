//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/usecase"
)

func TestApplicationFee(t *testing.T) {
	cases := []struct {
		amount, bps, want int64
	}{
		{10000, 2000, 2000},
		{5000, 2000, 1000},
		{999, 2000, 199},
		{1, 2000, 0},
		{0, 2000, 0},
		{-1, 2000, -1},
		{-10, 2000, -2},
		{12345, 1500, 1851},
	}
	for _, tc := range cases {
		if got := usecase.ApplicationFee(tc.amount, tc.bps); got != tc.want {
			t.Errorf("ApplicationFee(%d, %d) = %d, want %d", tc.amount, tc.bps, got, tc.want)
		}
	}
}

func TestCheckoutUseCase_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("should shape the session request and return the provider id", func(t *testing.T) {
		// --- Arrange ---
		gw := &MockPaymentGateway{SessionID: "cs_test_42"}
		uc := usecase.NewCheckoutUseCase(gw, usecase.DefaultPlatformFeeBps, false, newTestLogger())
		req := model.CheckoutRequest{UserID: "u1", AmountCents: 5000, Currency: "usd", StripeAccountID: "acct_1"}

		// --- Act ---
		session, err := uc.CreateSession(ctx, req, "http://shop.test/")

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session.ID != "cs_test_42" {
			t.Errorf("session id = %q", session.ID)
		}
		p := gw.LastParams
		if p == nil {
			t.Fatal("gateway was not called")
		}
		if p.ApplicationFeeCents != 1000 {
			t.Errorf("application fee = %d, want 1000", p.ApplicationFeeCents)
		}
		if p.ProductName != "Subscription for u1" || p.Quantity != 1 || p.UnitAmountCents != 5000 {
			t.Errorf("unexpected line item: %+v", p)
		}
		if p.Currency != "usd" || p.DestinationAccountID != "acct_1" {
			t.Errorf("currency/destination not passed through: %+v", p)
		}
		if p.SuccessURL != "http://shop.test/success?session_id={CHECKOUT_SESSION_ID}" {
			t.Errorf("success url = %q", p.SuccessURL)
		}
		if p.CancelURL != "http://shop.test/cancel" {
			t.Errorf("cancel url = %q", p.CancelURL)
		}
	})

	t.Run("should pass values through without validation", func(t *testing.T) {
		gw := &MockPaymentGateway{}
		uc := usecase.NewCheckoutUseCase(gw, 0, false, newTestLogger())
		_, err := uc.CreateSession(ctx, model.CheckoutRequest{AmountCents: -50}, "http://h")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gw.LastParams.UnitAmountCents != -50 || gw.LastParams.ApplicationFeeCents != -10 {
			t.Errorf("unexpected params: %+v", gw.LastParams)
		}
		if gw.LastParams.ProductName != "Subscription for " {
			t.Errorf("product name = %q", gw.LastParams.ProductName)
		}
	})

	t.Run("should surface provider failures once without retry", func(t *testing.T) {
		provErr := &domain.ProviderError{Provider: "stripe", Message: "No such destination: 'acct_x'", Err: errors.New("400")}
		gw := &MockPaymentGateway{CreateErr: provErr}
		uc := usecase.NewCheckoutUseCase(gw, usecase.DefaultPlatformFeeBps, false, newTestLogger())

		_, err := uc.CreateSession(ctx, model.CheckoutRequest{UserID: "u1", AmountCents: 100}, "http://h")
		if !errors.Is(err, provErr) {
			t.Fatalf("expected provider error, got %v", err)
		}
		if gw.Calls != 1 {
			t.Errorf("gateway calls = %d, want 1", gw.Calls)
		}
		if msg := usecase.FailureMessage(err); msg != "No such destination: 'acct_x'" {
			t.Errorf("FailureMessage = %q", msg)
		}
	})
}

func TestFailureMessage_PlainError(t *testing.T) {
	if got := usecase.FailureMessage(errors.New("dial tcp: timeout")); got != "dial tcp: timeout" {
		t.Fatalf("FailureMessage = %q", got)
	}
}
