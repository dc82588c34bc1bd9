package postgres

import (
	"context"
	"errors"
	"fmt"

	"vendor-subscription-checkout/internal/domain"
	"vendor-subscription-checkout/internal/domain/model"
	"vendor-subscription-checkout/internal/domain/ports/repository"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Ensure subscriptionRepo implements repository.SubscriptionRepository
var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

// executor is the subset of *pgxpool.Pool the repo uses.
type executor interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type subscriptionRepo struct {
	db executor
}

func NewSubscriptionRepo(db executor) *subscriptionRepo {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Put(ctx context.Context, sub *model.Subscription) error {
	if sub == nil || sub.SessionID == "" {
		return domain.ErrInvalidArgument
	}
	const q = `
INSERT INTO subscriptions (session_id, user_id, raw_session, activated_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (session_id) DO UPDATE SET
  user_id=$2, raw_session=$3, activated_at=$4;`

	raw := []byte(sub.RawSession)
	if len(raw) == 0 {
		raw = nil
	}
	if _, err := r.db.Exec(ctx, q, sub.SessionID, sub.UserID, raw, sub.ActivatedAt.UTC()); err != nil {
		return fmt.Errorf("upsert subscription %s: %w", sub.SessionID, err)
	}
	return nil
}

func (r *subscriptionRepo) Get(ctx context.Context, sessionID string) (*model.Subscription, error) {
	const q = `
SELECT session_id, user_id, raw_session, activated_at
  FROM subscriptions
 WHERE session_id=$1;`

	var (
		s   model.Subscription
		raw []byte
	)
	err := r.db.QueryRow(ctx, q, sessionID).Scan(&s.SessionID, &s.UserID, &raw, &s.ActivatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select subscription %s: %w", sessionID, err)
	}
	s.RawSession = raw
	s.ActivatedAt = s.ActivatedAt.UTC()
	return &s, nil
}

func (r *subscriptionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return n, nil
}
