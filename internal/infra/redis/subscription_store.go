package redis

import (
	"context"
	"errors"
	"fmt"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/repository"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

var _ repository.SubscriptionRepository = (*SubscriptionStore)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SubscriptionStore keeps all subscriptions in a single Redis hash keyed by
// session id. HSET replaces the field, so redelivery overwrites.
type SubscriptionStore struct {
	client RedisClient
	key    string
}

func NewSubscriptionStore(client RedisClient, key string) *SubscriptionStore {
	if key == "" {
		key = "subscriptions"
	}
	return &SubscriptionStore{client: client, key: key}
}

func (s *SubscriptionStore) Put(ctx context.Context, sub *model.Subscription) error {
	if sub == nil || sub.SessionID == "" {
		return domain.ErrInvalidArgument
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}
	if err := s.client.HSet(ctx, s.key, sub.SessionID, data); err != nil {
		return fmt.Errorf("redis hset %s: %w", s.key, err)
	}
	return nil
}

func (s *SubscriptionStore) Get(ctx context.Context, sessionID string) (*model.Subscription, error) {
	data, err := s.client.HGet(ctx, s.key, sessionID)
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget %s: %w", s.key, err)
	}
	var sub model.Subscription
	if err := json.Unmarshal([]byte(data), &sub); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return &sub, nil
}

func (s *SubscriptionStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, s.key)
	if err != nil {
		return 0, fmt.Errorf("redis hlen %s: %w", s.key, err)
	}
	return int(n), nil
}
