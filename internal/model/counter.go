package model

// CounterField 视频上可被原子增减的计数列
type CounterField string

const (
	CounterViewCount    CounterField = "view_count"
	CounterLikeCount    CounterField = "like_count"
	CounterCommentCount CounterField = "comment_count"
	CounterShareCount   CounterField = "share_count"
)

func (f CounterField) Valid() bool {
	switch f {
	case CounterViewCount, CounterLikeCount, CounterCommentCount, CounterShareCount:
		return true
	}
	return false
}
