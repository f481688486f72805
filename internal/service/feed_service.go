package service

import (
	"Showcase/internal/api/config"
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/pkg/util"
	"Showcase/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// FeedFilters 信息流过滤条件
type FeedFilters struct {
	BusinessType string
	Hashtag      string
	Cursor       string
	OrderBy      string
}

type FeedService interface {
	GetFeed(ctx context.Context, filters FeedFilters, limit int) (*dto.CursorPageDTO[*dto.VideoDTO], error)
	Search(ctx context.Context, text string, limit int) (*dto.ListDTO[*dto.VideoDTO], error)
	ListBusinessVideos(ctx context.Context, businessID, viewerID uint64, cursor string, limit int) (*dto.CursorPageDTO[*dto.VideoDTO], error)
}

type feedServiceImpl struct {
	feedRepo     repository.FeedRepo
	videoRepo    repository.VideoRepo
	businessRepo repository.BusinessRepo
	index        VideoIndex
	cfg          config.FeedConfig
}

func NewFeedService(
	feedRepo repository.FeedRepo,
	videoRepo repository.VideoRepo,
	businessRepo repository.BusinessRepo,
	index VideoIndex,
	cfg config.FeedConfig,
) FeedService {
	return &feedServiceImpl{
		feedRepo:     feedRepo,
		videoRepo:    videoRepo,
		businessRepo: businessRepo,
		index:        index,
		cfg:          cfg,
	}
}

// GetFeed 游标只在 created_at 排序下保证不重不漏
func (s *feedServiceImpl) GetFeed(ctx context.Context, filters FeedFilters, limit int) (*dto.CursorPageDTO[*dto.VideoDTO], error) {
	order := repository.OrderByCreatedAt
	if filters.OrderBy != "" {
		order = repository.FeedOrder(filters.OrderBy)
		if !order.Valid() {
			return nil, invalid("order_by", "must be one of created_at, view_count, like_count")
		}
	}
	cursorID, err := util.DecodeIDCursor(filters.Cursor)
	if err != nil {
		return nil, invalid("cursor", "malformed cursor")
	}

	videos, err := s.feedRepo.ListFeed(ctx, repository.FeedQuery{
		BusinessType: strings.TrimSpace(filters.BusinessType),
		Hashtag:      util.NormalizeTag(filters.Hashtag),
		CursorID:     cursorID,
		OrderBy:      order,
		Limit:        clampLimit(limit, s.cfg.DefaultLimit, s.cfg.MaxLimit),
	})
	if err != nil {
		return nil, err
	}
	return videoPage(videos), nil
}

// Search 优先走 ES 取候选 id 再回库读取，ES 异常时退回 SQL
func (s *feedServiceImpl) Search(ctx context.Context, text string, limit int) (*dto.ListDTO[*dto.VideoDTO], error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("q", "search text is required")
	}
	limit = clampLimit(limit, s.cfg.DefaultLimit, s.cfg.MaxLimit)

	if s.index != nil {
		videos, err := s.searchIndex(ctx, text, limit)
		if err == nil {
			return &dto.ListDTO[*dto.VideoDTO]{List: toVideoDTOs(videos)}, nil
		}
		log.WarnContext(ctx, "search index unavailable, fallback to database", "err", err)
	}

	videos, err := s.feedRepo.Search(ctx, text, limit)
	if err != nil {
		return nil, err
	}
	return &dto.ListDTO[*dto.VideoDTO]{List: toVideoDTOs(videos)}, nil
}

// searchIndexSpare ES 计数可能滞后，多取一些候选再按库内计数重排
const searchIndexSpare = 2

// searchIndex ES 只负责召回，排序以库内 view_count 为准，候选不足时用 SQL 补齐
func (s *feedServiceImpl) searchIndex(ctx context.Context, text string, limit int) ([]*model.Video, error) {
	ids, err := s.index.SearchVideoIDs(ctx, text, limit*searchIndexSpare)
	if err != nil {
		return nil, err
	}
	rows, err := s.videoRepo.GetVideosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	videos := make([]*model.Video, 0, len(rows))
	seen := make(map[uint64]struct{}, len(rows))
	for _, v := range rows {
		if v.IsDeleted || !v.IsPublic || v.Status != model.VideoStatusPublished {
			continue
		}
		if _, ok := seen[v.ID]; ok {
			continue
		}
		seen[v.ID] = struct{}{}
		videos = append(videos, v)
	}

	if len(videos) < limit {
		extra, err := s.feedRepo.Search(ctx, text, limit)
		if err != nil {
			return nil, err
		}
		for _, v := range extra {
			if _, ok := seen[v.ID]; ok {
				continue
			}
			seen[v.ID] = struct{}{}
			videos = append(videos, v)
		}
	}

	sort.SliceStable(videos, func(i, j int) bool {
		if videos[i].ViewCount != videos[j].ViewCount {
			return videos[i].ViewCount > videos[j].ViewCount
		}
		return videos[i].ID > videos[j].ID
	})
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return videos, nil
}

// ListBusinessVideos 店主看到全部状态，其他人只看到已发布的公开视频
func (s *feedServiceImpl) ListBusinessVideos(ctx context.Context, businessID, viewerID uint64, cursor string, limit int) (*dto.CursorPageDTO[*dto.VideoDTO], error) {
	business, err := s.businessRepo.GetBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	cursorID, err := util.DecodeIDCursor(cursor)
	if err != nil {
		return nil, invalid("cursor", "malformed cursor")
	}
	isOwner := viewerID != 0 && business.OwnerUserID == viewerID
	videos, err := s.feedRepo.ListBusinessVideos(ctx, business.ID, isOwner, cursorID,
		clampLimit(limit, s.cfg.DefaultLimit, s.cfg.MaxLimit))
	if err != nil {
		return nil, err
	}
	return videoPage(videos), nil
}

// videoPage 非空页返回最后一条的 id 作为下一页游标
func videoPage(videos []*model.Video) *dto.CursorPageDTO[*dto.VideoDTO] {
	page := &dto.CursorPageDTO[*dto.VideoDTO]{List: toVideoDTOs(videos)}
	if len(videos) > 0 {
		page.NextCursor = util.EncodeIDCursor(videos[len(videos)-1].ID)
	}
	return page
}
