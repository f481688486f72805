package model

import (
	"time"
)

// VideoLike 联合主键保证同一用户对同一视频最多一条
type VideoLike struct {
	VideoID   uint64    `gorm:"primaryKey;autoIncrement:false" json:"video_id"`
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_video_like_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (VideoLike) TableName() string {
	return "video_likes"
}
