package session

import (
	"context"
	"time"

	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/dto"
)

// PurchaseResult reports the outcome of a purchase. FailedWrites names the
// persistence steps that failed after the debit decision was made; the
// purchase itself still counts as successful then, matching the store's
// deliberately weak transaction model, and each failure is also published
// on the diagnostic event bus.
type PurchaseResult struct {
	NewBalance   int64
	Receipt      *dto.TransactionRead
	FailedWrites []string
}

// PurchaseOffer runs the purchase flow: authenticated profile present,
// offer found in the session's catalog snapshot, balance sufficient, then
// debit plus two ledger appends as three independent writes. No funds are
// reserved between the check and the debit, so two rapid purchases can both
// pass the sufficiency check and overdraw - a documented race, not
// prevented here.
func (sess *Session) PurchaseOffer(ctx context.Context, offerID, playerID string) (*PurchaseResult, error) {
	log := sess.svc.logger.With("context", "PurchaseOffer", "offerID", offerID)

	// Snapshot the profile fields while holding the lock; the cached
	// struct may be swapped by a concurrent balance write.
	sess.mu.RLock()
	var profile dto.UserRead
	authenticated := sess.profile != nil
	if authenticated {
		profile = *sess.profile
	}
	sess.mu.RUnlock()
	if !authenticated {
		return nil, domain.ErrNotAuthenticated
	}

	offer := sess.offerFromSnapshot(offerID)
	if offer == nil {
		log.Info("purchase rejected, offer not in catalog")
		return nil, domain.ErrOfferNotFound
	}
	if profile.Balance < offer.Price {
		log.Info("purchase rejected, insufficient balance",
			"balance", profile.Balance, "price", offer.Price)
		return nil, domain.ErrInsufficientBalance
	}

	newBalance := profile.Balance - offer.Price
	result := &PurchaseResult{NewBalance: newBalance}

	update := &dto.UserUpdate{Balance: &newBalance}
	if err := sess.svc.users.Update(ctx, profile.ID, update); err != nil {
		sess.svc.publishPermissionError(ctx, "update", "users/"+profile.ID, update, err)
		result.FailedWrites = append(result.FailedWrites, "balance")
	} else {
		sess.mu.Lock()
		if sess.profile != nil && sess.profile.ID == profile.ID {
			updated := *sess.profile
			updated.Balance = newBalance
			sess.profile = &updated
		}
		sess.mu.Unlock()
	}

	record := &dto.TransactionCreate{
		UserID:               profile.ID,
		Username:             profile.Username,
		GameOfferID:          offer.ID,
		GameOfferName:        offer.Name,
		GameOfferDescription: offer.Description,
		Amount:               offer.Price,
		PlayerID:             playerID,
	}
	receipt, err := sess.svc.ledger.CreateForUser(ctx, record)
	if err != nil {
		sess.svc.publishPermissionError(ctx, "create", "users/"+profile.ID+"/transactions", record, err)
		result.FailedWrites = append(result.FailedWrites, "user_ledger")
	} else {
		result.Receipt = receipt
	}
	if _, err := sess.svc.ledger.CreateGlobal(ctx, record); err != nil {
		sess.svc.publishPermissionError(ctx, "create", "transactions", record, err)
		result.FailedWrites = append(result.FailedWrites, "global_ledger")
	}

	_ = sess.svc.bus.Publish(ctx, domain.ProfileChangedEvent{UserID: profile.ID, OccurredAt: time.Now().UTC()})

	log.Info("purchase completed",
		"userID", profile.ID,
		"amount", offer.Price,
		"newBalance", newBalance,
		"failedWrites", len(result.FailedWrites),
	)
	return result, nil
}

// Transactions returns the authenticated user's purchase history, newest
// first.
func (sess *Session) Transactions(ctx context.Context) ([]*dto.TransactionRead, error) {
	sess.mu.RLock()
	profile := sess.profile
	sess.mu.RUnlock()
	if profile == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return sess.svc.ledger.ListForUser(ctx, profile.ID)
}
