package model

import (
	"encoding/json"
	"time"
)

// Subscription is recorded once a checkout session has been completed.
// SessionID is the provider session id and the unique key of the record.
type Subscription struct {
	SessionID   string          `json:"session_id"`
	UserID      string          `json:"user_id"`
	RawSession  json.RawMessage `json:"session"` // provider session object, kept opaque
	ActivatedAt time.Time       `json:"activated_at"`
}

// SalesStatus is the vendor sales summary.
type SalesStatus struct {
	TotalSubscriptions   int64 `json:"totalSubscriptions"`
	TotalRevenueCents    int64 `json:"totalRevenueCents"`
	TotalCommissionCents int64 `json:"totalCommissionCents"`
}
