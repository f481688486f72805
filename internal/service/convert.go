package service

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toVideoDTO(v *model.Video) *dto.VideoDTO {
	out := &dto.VideoDTO{}
	if err := copier.Copy(out, v); err != nil {
		log.Warn("copy video dto failed", "video_id", v.ID, "err", err)
	}
	out.PublicID = v.PublicID
	out.Status = string(v.Status)
	out.Tags = v.TagNames()
	out.CreatedAt = formatTime(v.CreatedAt)
	return out
}

func toVideoDTOs(videos []*model.Video) []*dto.VideoDTO {
	list := make([]*dto.VideoDTO, 0, len(videos))
	for _, v := range videos {
		list = append(list, toVideoDTO(v))
	}
	return list
}

func toCommentDTO(c *model.VideoComment, videoPublicID string) *dto.CommentDTO {
	out := &dto.CommentDTO{
		ID:            c.ID,
		VideoPublicID: videoPublicID,
		UserID:        c.UserID,
		Content:       c.Content,
		LikeCount:     c.LikeCount,
		IsDeleted:     c.IsDeleted,
		CreatedAt:     formatTime(c.CreatedAt),
	}
	if c.ParentID != nil {
		out.ParentID = *c.ParentID
	}
	// 已删除的评论只保留占位
	if c.IsDeleted {
		out.UserID = 0
		out.Content = ""
		out.LikeCount = 0
	}
	return out
}

// loadActiveVideo 按 public_id 取未删除的视频
func loadActiveVideo(ctx context.Context, repo repository.VideoRepo, publicID string) (*model.Video, error) {
	if publicID == "" {
		return nil, ErrVideoNotFound
	}
	v, err := repo.GetVideoByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if v.IsDeleted {
		return nil, ErrVideoNotFound
	}
	return v, nil
}

// loadVisibleVideo 非公开或未发布的视频对店主以外的人按不存在处理
func loadVisibleVideo(ctx context.Context, repo repository.VideoRepo, viewerID uint64, publicID string) (*model.Video, error) {
	v, err := loadActiveVideo(ctx, repo, publicID)
	if err != nil {
		return nil, err
	}
	if v.Status == model.VideoStatusPublished && v.IsPublic {
		return v, nil
	}
	if viewerID != 0 && v.Business.OwnerUserID == viewerID {
		return v, nil
	}
	return nil, ErrVideoNotFound
}

// clampLimit 0 或负数取默认值，超过上限截断
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
