package model

import (
	"time"
)

type VideoComment struct {
	ID        uint64    `gorm:"primaryKey"`
	VideoID   uint64    `gorm:"not null;index:idx_video_parent" json:"video_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	ParentID  *uint64   `gorm:"index:idx_video_parent" json:"parent_id"` // nil 表示一级评论
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	LikeCount int64     `gorm:"not null;default:0" json:"like_count"`
	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VideoComment) TableName() string {
	return "video_comments"
}

// IsRoot 是否为一级评论
func (c *VideoComment) IsRoot() bool {
	return c.ParentID == nil
}
