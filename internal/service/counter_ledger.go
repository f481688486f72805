package service

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/redis"
	"Showcase/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"gorm.io/gorm"
)

// CounterLedger 视频与评论上的计数，所有增减在数据库内原子完成
type CounterLedger interface {
	Increment(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error
	Decrement(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error
	IncrementCommentLikes(ctx context.Context, commentID uint64) error
	DecrementCommentLikes(ctx context.Context, commentID uint64) error
}

type counterLedgerImpl struct {
	repo repository.CounterRepo
}

func NewCounterLedger(repo repository.CounterRepo) CounterLedger {
	return &counterLedgerImpl{repo: repo}
}

func (s *counterLedgerImpl) Increment(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error {
	if err := checkCounterArgs(field, delta); err != nil {
		return err
	}
	if err := s.repo.IncrVideoCounter(ctx, videoID, field, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("increment %s: %w", field, err)
	}
	markVideoDirty(ctx, videoID)
	return nil
}

// Decrement 饱和到 0，不报错
func (s *counterLedgerImpl) Decrement(ctx context.Context, videoID uint64, field model.CounterField, delta int64) error {
	if err := checkCounterArgs(field, delta); err != nil {
		return err
	}
	if err := s.repo.DecrVideoCounter(ctx, videoID, field, delta); err != nil {
		return fmt.Errorf("decrement %s: %w", field, err)
	}
	markVideoDirty(ctx, videoID)
	return nil
}

func (s *counterLedgerImpl) IncrementCommentLikes(ctx context.Context, commentID uint64) error {
	return s.repo.IncrCommentLikes(ctx, commentID, 1)
}

func (s *counterLedgerImpl) DecrementCommentLikes(ctx context.Context, commentID uint64) error {
	return s.repo.DecrCommentLikes(ctx, commentID, 1)
}

func checkCounterArgs(field model.CounterField, delta int64) error {
	if !field.Valid() {
		return invalid("field", fmt.Sprintf("unknown counter %q", field))
	}
	if delta <= 0 {
		return invalid("delta", "must be positive")
	}
	return nil
}

// markVideoDirty 记入脏集合，供定时任务刷新搜索索引
func markVideoDirty(ctx context.Context, videoID uint64) {
	if redis.Rdb == nil {
		return
	}
	if err := redis.MarkDirty(ctx, consts.VideoDirtyKey, videoID); err != nil {
		log.WarnContext(ctx, "mark video dirty failed", "video_id", videoID, "err", err)
	}
}
