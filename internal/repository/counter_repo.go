package repository

import (
	"Showcase/internal/model"
	"context"

	"gorm.io/gorm"
)

type CounterRepo interface {
	IncrVideoCounter(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error
	DecrVideoCounter(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error
	IncrCommentLikes(ctx context.Context, commentID uint64, delta int64) error
	DecrCommentLikes(ctx context.Context, commentID uint64, delta int64) error
}

type CounterRepoImpl struct {
	db *gorm.DB
}

func NewCounterRepo(db *gorm.DB) CounterRepo {
	return &CounterRepoImpl{db: db}
}

// IncrVideoCounter 数据库内原子自增，视频不存在返回 gorm.ErrRecordNotFound
func (s *CounterRepoImpl) IncrVideoCounter(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error {
	col := string(field)
	res := dbFrom(ctx, s.db).Model(&model.Video{}).
		Where("id = ?", videoID).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrVideoCounter 饱和减，最低到 0
// 值已为 0 时 MySQL 报告 0 行受影响，因此这里不以 RowsAffected 判断存在性
func (s *CounterRepoImpl) DecrVideoCounter(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error {
	col := string(field)
	return dbFrom(ctx, s.db).Model(&model.Video{}).
		Where("id = ?", videoID).
		UpdateColumn(col, gorm.Expr("CASE WHEN "+col+" > ? THEN "+col+" - ? ELSE 0 END", delta, delta)).Error
}

func (s *CounterRepoImpl) IncrCommentLikes(ctx context.Context, commentID uint64, delta int64) error {
	return dbFrom(ctx, s.db).Model(&model.VideoComment{}).
		Where("id = ?", commentID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
}

func (s *CounterRepoImpl) DecrCommentLikes(ctx context.Context, commentID uint64, delta int64) error {
	return dbFrom(ctx, s.db).Model(&model.VideoComment{}).
		Where("id = ?", commentID).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > ? THEN like_count - ? ELSE 0 END", delta, delta)).Error
}
