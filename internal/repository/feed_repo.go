package repository

import (
	"Showcase/internal/model"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

// FeedOrder 信息流排序列
type FeedOrder string

const (
	OrderByCreatedAt FeedOrder = "created_at"
	OrderByViewCount FeedOrder = "view_count"
	OrderByLikeCount FeedOrder = "like_count"
)

func (o FeedOrder) Valid() bool {
	switch o {
	case OrderByCreatedAt, OrderByViewCount, OrderByLikeCount:
		return true
	}
	return false
}

// TrendingScoreExpr 与 service.TrendingScore 保持一致
const TrendingScoreExpr = "(videos.like_count * 2 + videos.comment_count + videos.share_count)"

// FeedQuery CursorID 为 0 表示第一页
type FeedQuery struct {
	BusinessType string
	Hashtag      string
	CursorID     uint64
	OrderBy      FeedOrder
	Limit        int
}

type FeedRepo interface {
	ListFeed(ctx context.Context, q FeedQuery) ([]*model.Video, error)
	Search(ctx context.Context, text string, limit int) ([]*model.Video, error)
	ListTrending(ctx context.Context, since time.Time, limit int) ([]*model.Video, error)
	ListBusinessVideos(ctx context.Context, businessID uint64, includeAll bool, cursorID uint64, limit int) ([]*model.Video, error)
}

type FeedRepoImpl struct {
	db *gorm.DB
}

func NewFeedRepo(db *gorm.DB) FeedRepo {
	return &FeedRepoImpl{db: db}
}

// visible 已发布、公开、未删除
func (s *FeedRepoImpl) visible(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, s.db).Model(&model.Video{}).
		Select("videos.*").
		Preload("Hashtags").
		Where("videos.status = ? AND videos.is_public = ? AND videos.is_deleted = ?", model.VideoStatusPublished, true, false)
}

func (s *FeedRepoImpl) ListFeed(ctx context.Context, q FeedQuery) ([]*model.Video, error) {
	query := s.visible(ctx)
	if q.BusinessType != "" {
		query = query.Joins("JOIN businesses ON businesses.id = videos.business_id AND businesses.type = ?", q.BusinessType)
	}
	if q.Hashtag != "" {
		query = query.Where("EXISTS (SELECT 1 FROM video_hashtags h WHERE h.video_id = videos.id AND h.tag = ?)", q.Hashtag)
	}
	if q.CursorID > 0 {
		query = query.Where("videos.id < ?", q.CursorID)
	}
	switch q.OrderBy {
	case OrderByViewCount:
		query = query.Order("videos.view_count DESC").Order("videos.id DESC")
	case OrderByLikeCount:
		query = query.Order("videos.like_count DESC").Order("videos.id DESC")
	default:
		query = query.Order("videos.created_at DESC").Order("videos.id DESC")
	}

	var videos []*model.Video
	err := query.Limit(q.Limit).Find(&videos).Error
	return videos, err
}

// Search 标题、描述、标签子串匹配，大小写不敏感
func (s *FeedRepoImpl) Search(ctx context.Context, text string, limit int) ([]*model.Video, error) {
	pattern := "%" + EscapeLike(strings.ToLower(text)) + "%"
	var videos []*model.Video
	err := s.visible(ctx).
		Where("(LOWER(videos.title) LIKE ? ESCAPE '!' OR LOWER(videos.description) LIKE ? ESCAPE '!' OR "+
			"EXISTS (SELECT 1 FROM video_hashtags h WHERE h.video_id = videos.id AND h.tag LIKE ? ESCAPE '!'))",
			pattern, pattern, pattern).
		Order("videos.view_count DESC").Order("videos.id DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (s *FeedRepoImpl) ListTrending(ctx context.Context, since time.Time, limit int) ([]*model.Video, error) {
	var videos []*model.Video
	err := s.visible(ctx).
		Where("videos.created_at >= ?", since).
		Order(TrendingScoreExpr + " DESC").
		Order("videos.view_count DESC").
		Order("videos.id DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

// ListBusinessVideos includeAll 为 true 时返回所有状态（店主视角）
func (s *FeedRepoImpl) ListBusinessVideos(ctx context.Context, businessID uint64, includeAll bool, cursorID uint64, limit int) ([]*model.Video, error) {
	query := dbFrom(ctx, s.db).Model(&model.Video{}).
		Preload("Hashtags").
		Where("business_id = ? AND is_deleted = ?", businessID, false)
	if !includeAll {
		query = query.Where("status = ? AND is_public = ?", model.VideoStatusPublished, true)
	}
	if cursorID > 0 {
		query = query.Where("id < ?", cursorID)
	}
	var videos []*model.Video
	err := query.Order("id DESC").Limit(limit).Find(&videos).Error
	return videos, err
}

// EscapeLike 转义 LIKE 通配符，配合 ESCAPE '!'
func EscapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
