package model

import "time"

// Business 商家，由商家模块维护，这里只读
type Business struct {
	ID          uint64    `gorm:"primaryKey"`
	OwnerUserID uint64    `gorm:"not null;index:idx_owner" json:"owner_user_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Type        string    `gorm:"type:varchar(64);not null;index:idx_type" json:"type"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}
