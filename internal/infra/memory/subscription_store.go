package memory

import (
	"context"
	"sync"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionStore)(nil)

// SubscriptionStore keeps subscriptions in process memory for the lifetime of
// the process. Writes for the same session id are last-write-wins.
type SubscriptionStore struct {
	mu   sync.RWMutex
	subs map[string]model.Subscription
}

func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{subs: make(map[string]model.Subscription)}
}

func (s *SubscriptionStore) Put(ctx context.Context, sub *model.Subscription) error {
	if sub == nil || sub.SessionID == "" {
		return domain.ErrInvalidArgument
	}
	cp := *sub
	cp.RawSession = append([]byte(nil), sub.RawSession...)

	s.mu.Lock()
	s.subs[sub.SessionID] = cp
	s.mu.Unlock()
	return nil
}

func (s *SubscriptionStore) Get(ctx context.Context, sessionID string) (*model.Subscription, error) {
	s.mu.RLock()
	sub, ok := s.subs[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sub, nil
}

func (s *SubscriptionStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs), nil
}
