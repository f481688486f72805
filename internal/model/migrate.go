package model

// All 需要建表的模型，按依赖顺序
func All() []any {
	return []any{
		&Business{},
		&Video{},
		&VideoHashtag{},
		&VideoLike{},
		&VideoComment{},
		&CommentLike{},
		&Favorite{},
	}
}
