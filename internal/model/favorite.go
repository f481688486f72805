package model

import (
	"time"
)

type Favorite struct {
	ID         uint64    `gorm:"primaryKey"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_user_target;index:idx_user_created" json:"user_id"`
	TargetType string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_target" json:"target_type"`
	TargetID   uint64    `gorm:"not null;uniqueIndex:idx_user_target" json:"target_id"`
	CreatedAt  time.Time `gorm:"index:idx_user_created" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// Target 解析判别字段
func (f *Favorite) Target() (Target, error) {
	return ParseTarget(f.TargetType, f.TargetID)
}

func NewFavorite(userID uint64, target Target, now time.Time) *Favorite {
	return &Favorite{
		UserID:     userID,
		TargetType: string(target.Type()),
		TargetID:   target.ID(),
		CreatedAt:  now,
	}
}
