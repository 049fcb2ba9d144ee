package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kingstore/api/internal/fixtures/seed"
	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/dto"
)

// Offers returns the session's in-memory catalog snapshot.
func (sess *Session) Offers() []*dto.OfferRead {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	out := make([]*dto.OfferRead, len(sess.offers))
	copy(out, sess.offers)
	return out
}

func (sess *Session) refreshCatalog(ctx context.Context) error {
	offers, err := sess.svc.offers.List(ctx)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	sess.offers = offers
	sess.mu.Unlock()
	return nil
}

func (sess *Session) offerFromSnapshot(id string) *dto.OfferRead {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	for _, o := range sess.offers {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// EnsureCatalog inserts the launch catalog the first time the offer store is
// observed empty. A non-empty catalog is left untouched, so the insert
// happens at most once per store lifetime.
func (s *Service) EnsureCatalog(ctx context.Context) error {
	count, err := s.offers.Count(ctx)
	if err != nil {
		return fmt.Errorf("count offers: %w", err)
	}
	if count > 0 {
		return nil
	}
	s.logger.Info("catalog empty, inserting seed offers", "count", len(seed.Offers))
	for i := range seed.Offers {
		if err := s.offers.Create(ctx, &seed.Offers[i]); err != nil {
			return fmt.Errorf("seed offer %s: %w", seed.Offers[i].ID, err)
		}
	}
	_ = s.bus.Publish(ctx, domain.CatalogChangedEvent{OccurredAt: time.Now().UTC()})
	return nil
}

// AddOffer creates a catalog offer. Admin-only by convention; the HTTP
// layer enforces the role.
func (sess *Session) AddOffer(ctx context.Context, create dto.OfferCreate) (*dto.OfferRead, error) {
	if create.ID == "" {
		create.ID = uuid.NewString()
	}
	offer, err := domain.NewGameOffer(create.ID, create.Name, create.Description, create.Price, create.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := sess.svc.offers.Create(ctx, &create); err != nil {
		sess.svc.publishPermissionError(ctx, "create", "game_offers", &create, err)
		return nil, fmt.Errorf("create offer: %w", err)
	}
	_ = sess.svc.bus.Publish(ctx, domain.CatalogChangedEvent{OccurredAt: time.Now().UTC()})
	return &dto.OfferRead{
		ID:          offer.ID,
		Name:        offer.Name,
		Description: offer.Description,
		Price:       offer.Price,
		ImageURL:    offer.ImageURL,
	}, nil
}

// UpdateOfferPrice writes the new price through to the catalog store and
// refreshes the local snapshot via the catalog change event.
func (sess *Session) UpdateOfferPrice(ctx context.Context, offerID string, newPrice int64) error {
	if newPrice <= 0 {
		return domain.ErrOfferPriceMustBePositive
	}
	existing, err := sess.svc.offers.Get(ctx, offerID)
	if err != nil {
		return fmt.Errorf("get offer: %w", err)
	}
	if existing == nil {
		return domain.ErrOfferNotFound
	}
	update := &dto.OfferUpdate{Price: &newPrice}
	if err := sess.svc.offers.Update(ctx, offerID, update); err != nil {
		sess.svc.publishPermissionError(ctx, "update", "game_offers/"+offerID, update, err)
		return fmt.Errorf("update offer price: %w", err)
	}
	_ = sess.svc.bus.Publish(ctx, domain.CatalogChangedEvent{OccurredAt: time.Now().UTC()})
	return nil
}

// DeleteOffer removes a catalog offer. Existing ledger entries keep their
// denormalized copy of its display fields.
func (sess *Session) DeleteOffer(ctx context.Context, offerID string) error {
	existing, err := sess.svc.offers.Get(ctx, offerID)
	if err != nil {
		return fmt.Errorf("get offer: %w", err)
	}
	if existing == nil {
		return domain.ErrOfferNotFound
	}
	if err := sess.svc.offers.Delete(ctx, offerID); err != nil {
		sess.svc.publishPermissionError(ctx, "delete", "game_offers/"+offerID, nil, err)
		return fmt.Errorf("delete offer: %w", err)
	}
	_ = sess.svc.bus.Publish(ctx, domain.CatalogChangedEvent{OccurredAt: time.Now().UTC()})
	return nil
}
