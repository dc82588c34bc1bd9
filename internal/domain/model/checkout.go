package model

// CheckoutRequest is the caller-supplied input of a checkout session.
// Values are passed through to the provider as-is.
type CheckoutRequest struct {
	UserID      string `json:"userId"`
	AmountCents int64  `json:"amount_cents"`
	// ISO 4217 code, e.g. "usd"
	Currency string `json:"currency"`
	// Connected account receiving the payment minus the application fee.
	StripeAccountID string `json:"stripe_account_id"`
}

// CheckoutSessionParams is the fully shaped provider request.
type CheckoutSessionParams struct {
	ProductName          string
	Currency             string
	UnitAmountCents      int64
	Quantity             int64
	ApplicationFeeCents  int64
	DestinationAccountID string
	SuccessURL           string
	CancelURL            string
}

// CheckoutSession is the provider-issued hosted session.
type CheckoutSession struct {
	ID  string
	URL string
}
