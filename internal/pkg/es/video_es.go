package es

import "time"

// VideoES 写入 ES 的视频文档，只索引已发布的视频
type VideoES struct {
	ID           uint64    `json:"id"`
	PublicID     string    `json:"public_id"`
	BusinessID   uint64    `json:"business_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Hashtags     []string  `json:"hashtags"`
	Status       string    `json:"status"`
	IsPublic     bool      `json:"is_public"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	ShareCount   int64     `json:"share_count"`
	CreatedAt    time.Time `json:"created_at"`
}
