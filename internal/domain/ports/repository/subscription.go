package repository

import (
	"context"

	"vendor-subscription-checkout/internal/domain/model"
)

// SubscriptionRepository stores subscriptions keyed by provider session id.
// Put overwrites any existing record for the same session id.
type SubscriptionRepository interface {
	Put(ctx context.Context, sub *model.Subscription) error
	Get(ctx context.Context, sessionID string) (*model.Subscription, error)
	Count(ctx context.Context) (int, error)
}
