package dto

// FavoriteReq 收藏/取消收藏
type FavoriteReq struct {
	TargetType string `json:"target_type" binding:"required" validate:"oneof=business video product"`
	TargetID   uint64 `json:"target_id" binding:"required" validate:"min=1"`
}

// FavoriteQueryDTO 收藏列表查询
type FavoriteQueryDTO struct {
	Type   string `form:"type" validate:"omitempty,oneof=business video product"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=50"`
}

type FavoriteDTO struct {
	ID         uint64 `json:"id"`
	TargetType string `json:"target_type"`
	TargetID   uint64 `json:"target_id"`
	CreatedAt  string `json:"created_at"`
}
