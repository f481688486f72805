package repository

import (
	"Showcase/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type VideoRepo interface {
	CreateVideo(ctx context.Context, video *model.Video, tags []string) error
	GetVideoByID(ctx context.Context, id uint64) (*model.Video, error)
	GetVideoByPublicID(ctx context.Context, publicID string) (*model.Video, error)
	GetVideosByIDs(ctx context.Context, ids []uint64) ([]*model.Video, error)
	SoftDeleteVideo(ctx context.Context, id uint64) error
	TransitionStatus(ctx context.Context, id uint64, from, to model.VideoStatus, fields map[string]any) (bool, error)
	ListStaleProcessing(ctx context.Context, before time.Time, limit int) ([]*model.Video, error)
}

type VideoRepoImpl struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) VideoRepo {
	return &VideoRepoImpl{db: db}
}

// CreateVideo 视频与标签同一事务写入，tags 需已归一化
func (s *VideoRepoImpl) CreateVideo(ctx context.Context, video *model.Video, tags []string) error {
	return dbFrom(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Business", "Hashtags").Create(video).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		hashtags := make([]model.VideoHashtag, 0, len(tags))
		for _, tag := range tags {
			hashtags = append(hashtags, model.VideoHashtag{VideoID: video.ID, Tag: tag})
		}
		if err := tx.Create(&hashtags).Error; err != nil {
			return err
		}
		video.Hashtags = hashtags
		return nil
	})
}

// GetVideoByID 包含已删除的行，由调用方判断 IsDeleted
func (s *VideoRepoImpl) GetVideoByID(ctx context.Context, id uint64) (*model.Video, error) {
	var video model.Video
	err := dbFrom(ctx, s.db).Preload("Hashtags").First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *VideoRepoImpl) GetVideoByPublicID(ctx context.Context, publicID string) (*model.Video, error) {
	var video model.Video
	err := dbFrom(ctx, s.db).Preload("Hashtags").Preload("Business").
		Where("public_id = ?", publicID).
		First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetVideosByIDs 结果顺序与 ids 无关
func (s *VideoRepoImpl) GetVideosByIDs(ctx context.Context, ids []uint64) ([]*model.Video, error) {
	var videos []*model.Video
	if len(ids) == 0 {
		return videos, nil
	}
	err := dbFrom(ctx, s.db).Preload("Hashtags").Where("id IN ?", ids).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *VideoRepoImpl) SoftDeleteVideo(ctx context.Context, id uint64) error {
	return dbFrom(ctx, s.db).Model(&model.Video{}).Where("id = ?", id).Update("is_deleted", true).Error
}

// TransitionStatus 以 status=from 为条件更新，返回是否真的迁移了
func (s *VideoRepoImpl) TransitionStatus(ctx context.Context, id uint64, from, to model.VideoStatus, fields map[string]any) (bool, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["status"] = to
	res := dbFrom(ctx, s.db).Model(&model.Video{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, from, false).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *VideoRepoImpl) ListStaleProcessing(ctx context.Context, before time.Time, limit int) ([]*model.Video, error) {
	var videos []*model.Video
	err := dbFrom(ctx, s.db).
		Where("status = ? AND is_deleted = ? AND created_at < ?", model.VideoStatusProcessing, false, before).
		Order("id ASC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}
