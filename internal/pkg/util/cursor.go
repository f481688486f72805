package util

import (
	"encoding/base64"
	"errors"

	"github.com/goccy/go-json"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// EncodeCursor 将排序值数组编码为 Base64 字符串
func EncodeCursor(sortValues []interface{}) string {
	if len(sortValues) == 0 {
		return ""
	}
	b, _ := json.Marshal(sortValues)
	return base64.URLEncoding.EncodeToString(b)
}

// DecodeCursor 将前端传来的 Base64 字符串解码为排序值数组
func DecodeCursor(cursor string) ([]interface{}, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, err
	}
	var sortValues []interface{}
	err = json.Unmarshal(b, &sortValues)
	return sortValues, err
}

// EncodeIDCursor 只携带最后一条记录 id 的游标
func EncodeIDCursor(id uint64) string {
	if id == 0 {
		return ""
	}
	return EncodeCursor([]interface{}{id})
}

// DecodeIDCursor 空游标返回 0
func DecodeIDCursor(cursor string) (uint64, error) {
	values, err := DecodeCursor(cursor)
	if err != nil {
		return 0, ErrInvalidCursor
	}
	if len(values) == 0 {
		return 0, nil
	}
	f, ok := values[len(values)-1].(float64)
	if !ok || f < 1 || f != float64(uint64(f)) {
		return 0, ErrInvalidCursor
	}
	return uint64(f), nil
}
