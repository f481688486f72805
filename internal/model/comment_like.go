package model

import (
	"time"
)

type CommentLike struct {
	CommentID uint64    `gorm:"primaryKey;autoIncrement:false" json:"comment_id"`
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_comment_like_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
