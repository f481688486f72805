package service

import (
	"Showcase/internal/api/config"
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/redis"
	"Showcase/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type TrendingService interface {
	GetTrending(ctx context.Context, limit int) (*dto.ListDTO[*dto.VideoDTO], error)
}

type trendingServiceImpl struct {
	feedRepo repository.FeedRepo
	cfg      config.TrendingConfig
	feedCfg  config.FeedConfig
	now      func() time.Time
}

func NewTrendingService(feedRepo repository.FeedRepo, cfg config.TrendingConfig, feedCfg config.FeedConfig) TrendingService {
	return &trendingServiceImpl{feedRepo: feedRepo, cfg: cfg, feedCfg: feedCfg, now: time.Now}
}

// TrendingScore 与 repository.TrendingScoreExpr 保持一致
func TrendingScore(v *model.Video) int64 {
	return v.LikeCount*2 + v.CommentCount + v.ShareCount
}

// GetTrending 统计窗口以调用时刻为准，结果最多缓存 cache_ttl
func (s *trendingServiceImpl) GetTrending(ctx context.Context, limit int) (*dto.ListDTO[*dto.VideoDTO], error) {
	limit = clampLimit(limit, s.feedCfg.DefaultLimit, s.feedCfg.MaxLimit)
	key := consts.TrendingCacheKey + strconv.Itoa(limit)

	if s.cacheEnabled() {
		if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
			var list []*dto.VideoDTO
			if err = json.Unmarshal([]byte(cached), &list); err == nil {
				return &dto.ListDTO[*dto.VideoDTO]{List: list}, nil
			}
		}
	}

	window := s.cfg.Window
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	since := s.now().UTC().Add(-window)
	videos, err := s.feedRepo.ListTrending(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	list := toVideoDTOs(videos)

	if s.cacheEnabled() {
		if b, err := json.Marshal(list); err == nil {
			if err = redis.SetWithExpiration(ctx, key, string(b), s.cfg.CacheTTL); err != nil {
				log.WarnContext(ctx, "cache trending failed", "err", err)
			}
		}
	}
	return &dto.ListDTO[*dto.VideoDTO]{List: list}, nil
}

func (s *trendingServiceImpl) cacheEnabled() bool {
	return s.cfg.CacheTTL > 0 && redis.Rdb != nil
}
