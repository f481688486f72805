package repository

import (
	"Showcase/internal/model"
	"context"

	"gorm.io/gorm"
)

type BusinessRepo interface {
	CreateBusiness(ctx context.Context, b *model.Business) error
	GetBusinessByID(ctx context.Context, id uint64) (*model.Business, error)
}

type BusinessRepoImpl struct {
	db *gorm.DB
}

func NewBusinessRepo(db *gorm.DB) BusinessRepo {
	return &BusinessRepoImpl{db: db}
}

func (s *BusinessRepoImpl) CreateBusiness(ctx context.Context, b *model.Business) error {
	return dbFrom(ctx, s.db).Create(b).Error
}

// GetBusinessByID 已删除的商家视为不存在
func (s *BusinessRepoImpl) GetBusinessByID(ctx context.Context, id uint64) (*model.Business, error) {
	var b model.Business
	err := dbFrom(ctx, s.db).Where("id = ? AND is_deleted = ?", id, false).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}
