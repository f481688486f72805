package repository

import (
	"Showcase/internal/model"
	"context"

	"gorm.io/gorm"
)

type FavoriteRepo interface {
	CreateFavorite(ctx context.Context, f *model.Favorite) error
	DeleteFavorite(ctx context.Context, userID uint64, target model.Target) (int64, error)
	CheckFavoriteExists(ctx context.Context, userID uint64, target model.Target) (bool, error)
	ListFavorites(ctx context.Context, userID uint64, targetType model.TargetType, cursorID uint64, limit int) ([]*model.Favorite, error)
}

type FavoriteRepoImpl struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) FavoriteRepo {
	return &FavoriteRepoImpl{db: db}
}

func (s *FavoriteRepoImpl) CreateFavorite(ctx context.Context, f *model.Favorite) error {
	return dbFrom(ctx, s.db).Create(f).Error
}

func (s *FavoriteRepoImpl) DeleteFavorite(ctx context.Context, userID uint64, target model.Target) (int64, error) {
	res := dbFrom(ctx, s.db).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, string(target.Type()), target.ID()).
		Delete(&model.Favorite{})
	return res.RowsAffected, res.Error
}

func (s *FavoriteRepoImpl) CheckFavoriteExists(ctx context.Context, userID uint64, target model.Target) (bool, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&model.Favorite{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, string(target.Type()), target.ID()).
		Count(&count).Error
	return count > 0, err
}

// ListFavorites targetType 为空时不过滤类型
func (s *FavoriteRepoImpl) ListFavorites(ctx context.Context, userID uint64, targetType model.TargetType, cursorID uint64, limit int) ([]*model.Favorite, error) {
	query := dbFrom(ctx, s.db).Where("user_id = ?", userID)
	if targetType != "" {
		query = query.Where("target_type = ?", string(targetType))
	}
	if cursorID > 0 {
		query = query.Where("id < ?", cursorID)
	}
	var favorites []*model.Favorite
	err := query.Order("id DESC").Limit(limit).Find(&favorites).Error
	return favorites, err
}
