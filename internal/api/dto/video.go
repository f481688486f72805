package dto

// VideoDTO 对外视频信息，ID 为 public_id
type VideoDTO struct {
	PublicID        string   `json:"id"`
	BusinessID      uint64   `json:"business_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	VideoURL        string   `json:"video_url"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	Duration        int      `json:"duration"`
	Format          string   `json:"format"`
	Resolution      string   `json:"resolution"`
	ViewCount       int64    `json:"view_count"`
	LikeCount       int64    `json:"like_count"`
	CommentCount    int64    `json:"comment_count"`
	ShareCount      int64    `json:"share_count"`
	IsPublic        bool     `json:"is_public"`
	Status          string   `json:"status"`
	ProcessingError string   `json:"processing_error,omitempty"`
	Tags            []string `json:"hashtags"`
	CreatedAt       string   `json:"created_at"`
}

// FeedQueryDTO 信息流查询
type FeedQueryDTO struct {
	BusinessType string `form:"business_type" validate:"omitempty,max=64"`
	Hashtag      string `form:"hashtag" validate:"omitempty,max=64"`
	Cursor       string `form:"cursor"`
	OrderBy      string `form:"order_by"`
	Limit        int    `form:"limit"`
}

// SearchQueryDTO 搜索查询
type SearchQueryDTO struct {
	Q     string `form:"q"`
	Limit int    `form:"limit"`
}

// TrendingQueryDTO 热门查询
type TrendingQueryDTO struct {
	Limit int `form:"limit"`
}

// SubmitVideoDTO 商家提交视频
type SubmitVideoDTO struct {
	Title       string   `json:"title" binding:"required" validate:"min=1,max=255"`
	Description string   `json:"description" validate:"max=5000"`
	SourceURL   string   `json:"source_url" binding:"required" validate:"min=1,max=512"`
	Hashtags    []string `json:"hashtags" validate:"max=20,dive,max=64"`
	IsPublic    *bool    `json:"is_public"`
}

// MediaMetaDTO 转码产物信息
type MediaMetaDTO struct {
	VideoURL     string `json:"video_url" validate:"max=512"`
	ThumbnailURL string `json:"thumbnail_url" validate:"max=512"`
	Duration     int    `json:"duration" validate:"min=0"`
	Format       string `json:"format" validate:"max=32"`
	Resolution   string `json:"resolution" validate:"max=32"`
}

// ProcessingResultDTO 转码回调，video_id 与 public_id 至少一个
type ProcessingResultDTO struct {
	VideoID  uint64        `json:"video_id"`
	PublicID string        `json:"public_id"`
	Outcome  string        `json:"outcome" binding:"required" validate:"oneof=success failure"`
	Media    *MediaMetaDTO `json:"media"`
	Error    string        `json:"error" validate:"max=1000"`
}

// ShareDTO 分享后的计数
type ShareDTO struct {
	ShareCount int64 `json:"share_count"`
}

// VideoStateDTO 视频交互状态
type VideoStateDTO struct {
	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	ShareCount   int64 `json:"share_count"`
	IsLiked      bool  `json:"is_liked"`
	IsFavorited  bool  `json:"is_favorited"`
}
