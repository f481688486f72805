package dto

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	Content  string `json:"content" binding:"required"`
	ParentID uint64 `json:"parent_id"` // 0 表示一级评论
}

// CommentDTO 评论返回详情
type CommentDTO struct {
	ID            uint64 `json:"id"`
	VideoPublicID string `json:"video_id"`
	UserID        uint64 `json:"user_id"`
	ParentID      uint64 `json:"parent_id"`
	Content       string `json:"content"`
	LikeCount     int64  `json:"like_count"`
	IsLiked       bool   `json:"is_liked"`
	IsDeleted     bool   `json:"is_deleted"`
	CreatedAt     string `json:"created_at"`
	ReplyCount    int64  `json:"reply_count"`

	Replies []*CommentDTO `json:"replies,omitempty"`
}
