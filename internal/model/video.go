package model

import (
	"time"
)

// VideoStatus 视频生命周期状态
type VideoStatus string

const (
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusPublished  VideoStatus = "published"
	VideoStatusFailed     VideoStatus = "failed"
)

// IsTerminal published / failed 之后不再迁移
func (s VideoStatus) IsTerminal() bool {
	return s == VideoStatusPublished || s == VideoStatusFailed
}

type Video struct {
	ID              uint64      `gorm:"primaryKey"`
	PublicID        string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_public_id" json:"public_id"`
	BusinessID      uint64      `gorm:"not null;index:idx_business_id" json:"business_id"`
	Title           string      `gorm:"type:varchar(255);not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	SourceURL       string      `gorm:"type:varchar(512);not null;default:''" json:"source_url"`
	VideoURL        string      `gorm:"type:varchar(512);not null;default:''" json:"video_url"`
	ThumbnailURL    string      `gorm:"type:varchar(512);not null;default:''" json:"thumbnail_url"`
	Duration        int         `gorm:"not null;default:0" json:"duration"`
	Format          string      `gorm:"type:varchar(32);not null;default:''" json:"format"`
	Resolution      string      `gorm:"type:varchar(32);not null;default:''" json:"resolution"`
	ViewCount       int64       `gorm:"not null;default:0" json:"view_count"`
	LikeCount       int64       `gorm:"not null;default:0" json:"like_count"`
	CommentCount    int64       `gorm:"not null;default:0" json:"comment_count"`
	ShareCount      int64       `gorm:"not null;default:0" json:"share_count"`
	IsPublic        bool        `gorm:"not null" json:"is_public"`
	Status          VideoStatus `gorm:"type:varchar(16);not null;default:'processing';index:idx_status_created" json:"status"`
	ProcessingError string      `gorm:"type:varchar(1000);not null;default:''" json:"processing_error"`
	IsDeleted       bool        `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt       time.Time   `gorm:"index:idx_status_created" json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// 关联关系
	Business Business       `gorm:"foreignKey:BusinessID;references:ID"`
	Hashtags []VideoHashtag `gorm:"foreignKey:VideoID;references:ID"`
}

func (Video) TableName() string {
	return "videos"
}

// TagNames 返回标签文本
func (v *Video) TagNames() []string {
	tags := make([]string, 0, len(v.Hashtags))
	for _, h := range v.Hashtags {
		tags = append(tags, h.Tag)
	}
	return tags
}
