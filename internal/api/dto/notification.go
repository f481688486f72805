package dto

// NotificationDTO 通知返回对象
type NotificationDTO struct {
	ID         string         `json:"id"`
	SenderID   uint64         `json:"sender_id"`
	Kind       string         `json:"kind"`
	TargetType string         `json:"target_type"`
	TargetID   uint64         `json:"target_id"`
	Content    string         `json:"content"`
	Payload    map[string]any `json:"payload"`
	IsRead     bool           `json:"is_read"`
	CreatedAt  string         `json:"created_at"`
}

// NotificationUnreadDTO 未读数返回
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

// NotificationReadReq 标记已读
type NotificationReadReq struct {
	ID string `json:"id" binding:"required" validate:"len=24,hexadecimal"`
}

// NotificationQueryDTO 通知列表分页
type NotificationQueryDTO struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=50"`
}
