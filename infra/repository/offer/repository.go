// Package offer implements the Catalog Store on Postgres via gorm.
package offer

import (
	"context"
	"errors"

	"github.com/kingstore/api/pkg/dto"
	repooffer "github.com/kingstore/api/pkg/repository/offer"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repooffer.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.OfferCreate) error {
	offer := &GameOffer{
		ID:          create.ID,
		Name:        create.Name,
		Description: create.Description,
		Price:       create.Price,
		ImageURL:    create.ImageURL,
	}
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *repository) Get(ctx context.Context, id string) (*dto.OfferRead, error) {
	var offer GameOffer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&offer), nil
}

func (r *repository) List(ctx context.Context) ([]*dto.OfferRead, error) {
	var offers []GameOffer
	if err := r.db.WithContext(ctx).Order("name, price").Find(&offers).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.OfferRead, 0, len(offers))
	for i := range offers {
		result = append(result, mapModelToDTO(&offers[i]))
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, id string, ou *dto.OfferUpdate) error {
	updates := make(map[string]interface{})
	if ou.Price != nil {
		updates["price"] = *ou.Price
	}
	if ou.ImageURL != nil {
		updates["image_url"] = *ou.ImageURL
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&GameOffer{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&GameOffer{}, "id = ?", id).Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&GameOffer{}).Count(&count).Error
	return count, err
}

func mapModelToDTO(offer *GameOffer) *dto.OfferRead {
	return &dto.OfferRead{
		ID:          offer.ID,
		Name:        offer.Name,
		Description: offer.Description,
		Price:       offer.Price,
		ImageURL:    offer.ImageURL,
	}
}
