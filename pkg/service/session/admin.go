package session

import (
	"context"
	"fmt"
	"time"

	"github.com/kingstore/api/pkg/cache"
	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/dto"
)

const (
	usersCacheKey        = "admin:users"
	transactionsCacheKey = "admin:transactions"
)

// UpdateBalance writes a new balance to a user's profile. Admin-only by
// convention; the HTTP layer enforces the role. If the edited user is the
// session's own profile the cache is updated in place, and a profile change
// event lets any other live session for that user catch up.
func (sess *Session) UpdateBalance(ctx context.Context, userID string, newBalance int64) error {
	if newBalance < 0 {
		return domain.ErrBalanceMustBeNonNegative
	}
	existing, err := sess.svc.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if existing == nil {
		return domain.ErrProfileNotFound
	}
	update := &dto.UserUpdate{Balance: &newBalance}
	if err := sess.svc.users.Update(ctx, userID, update); err != nil {
		sess.svc.publishPermissionError(ctx, "update", "users/"+userID, update, err)
		return fmt.Errorf("update balance: %w", err)
	}

	// Replace the cached struct rather than mutating it; readers hold
	// the old pointer outside the lock.
	sess.mu.Lock()
	if sess.profile != nil && sess.profile.ID == userID {
		updated := *sess.profile
		updated.Balance = newBalance
		sess.profile = &updated
	}
	sess.mu.Unlock()

	_ = sess.svc.bus.Publish(ctx, domain.ProfileChangedEvent{UserID: userID, OccurredAt: time.Now().UTC()})
	return nil
}

// DeleteUser removes a profile record. The underlying identity-provider
// account is NOT deleted; an orphaned account may remain and can no longer
// reach a dashboard.
func (sess *Session) DeleteUser(ctx context.Context, userID string) error {
	existing, err := sess.svc.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if existing == nil {
		return domain.ErrProfileNotFound
	}
	if err := sess.svc.users.Delete(ctx, userID); err != nil {
		sess.svc.publishPermissionError(ctx, "delete", "users/"+userID, nil, err)
		return fmt.Errorf("delete profile: %w", err)
	}
	_ = sess.svc.bus.Publish(ctx, domain.ProfileChangedEvent{UserID: userID, OccurredAt: time.Now().UTC()})
	return nil
}

// Listings serves the admin review tables, fronted by a short-lived cache
// so a dashboard polling the global ledger does not hammer the store.
// Profile change events drop both cached listings, so the TTL only bounds
// staleness from writers outside this process.
type Listings struct {
	svc   *Service
	cache cache.Cache
	ttl   time.Duration
}

func NewListings(svc *Service, c cache.Cache, ttl time.Duration) *Listings {
	l := &Listings{svc: svc, cache: c, ttl: ttl}
	svc.bus.Subscribe(domain.ProfileChangedEvent{}.Type(), func(ctx context.Context, _ domain.Event) {
		l.invalidate(ctx)
	})
	return l
}

func (l *Listings) invalidate(ctx context.Context) {
	_ = l.cache.Delete(ctx, usersCacheKey)
	_ = l.cache.Delete(ctx, transactionsCacheKey)
}

// Users returns every profile with its balance, ordered by username.
func (l *Listings) Users(ctx context.Context) ([]*dto.UserRead, error) {
	var cached []*dto.UserRead
	if found, err := l.cache.Get(ctx, usersCacheKey, &cached); err == nil && found {
		return cached, nil
	}
	users, err := l.svc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	_ = l.cache.Set(ctx, usersCacheKey, users, l.ttl)
	return users, nil
}

// Transactions returns the flat global ledger, newest first.
func (l *Listings) Transactions(ctx context.Context) ([]*dto.TransactionRead, error) {
	var cached []*dto.TransactionRead
	if found, err := l.cache.Get(ctx, transactionsCacheKey, &cached); err == nil && found {
		return cached, nil
	}
	txs, err := l.svc.ledger.ListGlobal(ctx)
	if err != nil {
		return nil, err
	}
	_ = l.cache.Set(ctx, transactionsCacheKey, txs, l.ttl)
	return txs, nil
}
