package dto

// Response 统一返回结构
type Response struct {
	Code    int          `json:"code"`
	Kind    string       `json:"kind,omitempty"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError 字段级校验失败
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// CursorPageDTO 游标分页结果，NextCursor 为空表示没有更多
type CursorPageDTO[T any] struct {
	List       []T    `json:"list"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// ListDTO 不分页的列表
type ListDTO[T any] struct {
	List []T `json:"list"`
}

// CursorQuery 通用游标分页参数
type CursorQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=50"`
}
