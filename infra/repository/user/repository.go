// Package user implements the Profile Store on Postgres via gorm.
package user

import (
	"context"
	"errors"

	"github.com/kingstore/api/pkg/dto"
	repouser "github.com/kingstore/api/pkg/repository/user"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) repouser.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.UserCreate) error {
	user := &User{
		ID:       create.ID,
		Username: create.Username,
		Balance:  create.Balance,
		IsAdmin:  create.IsAdmin,
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) Get(ctx context.Context, id string) (*dto.UserRead, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&user), nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	var user User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&user), nil
}

func (r *repository) List(ctx context.Context) ([]*dto.UserRead, error) {
	var users []User
	if err := r.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapModelToDTO(&users[i]))
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, id string, uu *dto.UserUpdate) error {
	updates := make(map[string]interface{})
	if uu.Username != nil {
		updates["username"] = *uu.Username
	}
	if uu.Balance != nil {
		updates["balance"] = *uu.Balance
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) CreateAdminRole(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Create(&AdminRole{UserID: userID}).Error
}

func (r *repository) HasAdminRole(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AdminRole{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func mapModelToDTO(user *User) *dto.UserRead {
	return &dto.UserRead{
		ID:       user.ID,
		Username: user.Username,
		Balance:  user.Balance,
		IsAdmin:  user.IsAdmin,
	}
}
