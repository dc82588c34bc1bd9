//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/adapter"
	"vendor-subscription-checkout/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// MockPaymentGateway records the last session params and replays a canned event.
type MockPaymentGateway struct {
	adapter.PaymentGateway // Embed interface for forward compatibility

	mu         sync.Mutex
	LastParams *model.CheckoutSessionParams
	Calls      int
	SessionID  string
	CreateErr  error

	Event    model.WebhookEvent
	ParseErr error
}

func (m *MockPaymentGateway) Name() string { return "mock" }

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, p model.CheckoutSessionParams) (*model.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastParams = &p
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	id := m.SessionID
	if id == "" {
		id = "cs_mock_1"
	}
	return &model.CheckoutSession{ID: id}, nil
}

func (m *MockPaymentGateway) ParseWebhookEvent(payload []byte, signatureHeader string) (model.WebhookEvent, error) {
	if m.ParseErr != nil {
		return nil, m.ParseErr
	}
	return m.Event, nil
}

// MockSubscriptionRepo is an in-memory repository with write counting.
type MockSubscriptionRepo struct {
	repository.SubscriptionRepository

	mu     sync.Mutex
	subs   map[string]model.Subscription
	Puts   int
	PutErr error
}

func NewMockSubscriptionRepo() *MockSubscriptionRepo {
	return &MockSubscriptionRepo{subs: map[string]model.Subscription{}}
}

func (m *MockSubscriptionRepo) Put(ctx context.Context, sub *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Puts++
	m.subs[sub.SessionID] = *sub
	return nil
}

func (m *MockSubscriptionRepo) Get(ctx context.Context, sessionID string) (*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.subs[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *MockSubscriptionRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs), nil
}
