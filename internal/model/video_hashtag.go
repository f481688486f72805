package model

type VideoHashtag struct {
	ID      uint64 `gorm:"primaryKey"`
	VideoID uint64 `gorm:"not null;uniqueIndex:idx_video_tag" json:"video_id"`
	Tag     string `gorm:"type:varchar(64);not null;uniqueIndex:idx_video_tag;index:idx_tag" json:"tag"`
}

func (VideoHashtag) TableName() string {
	return "video_hashtags"
}
