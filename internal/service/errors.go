package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	Unprocessable       = 422
	InternalServerError = 500
	BadGateway          = 502
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUnauthorized         = errors.New("未登录或登录已过期")
	ErrForbidden            = errors.New("无权操作")
	ErrVideoNotFound        = errors.New("视频不存在")
	ErrCommentNotFound      = errors.New("评论不存在")
	ErrBusinessNotFound     = errors.New("商家不存在")
	ErrAlreadyLiked         = errors.New("已经点过赞")
	ErrNotLiked             = errors.New("尚未点赞")
	ErrAlreadyFavorited     = errors.New("已经收藏")
	ErrNotFavorited         = errors.New("尚未收藏")
	ErrInvalidParent        = errors.New("父评论无效")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrStorage              = errors.New("存储服务异常")
	ErrProcessing           = errors.New("转码服务异常")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

// ErrorKind 对外稳定的错误类别
type ErrorKind struct {
	Code int
	Kind string
}

var ErrorMap = map[error]ErrorKind{
	ErrParamInvalid:         {BadRequest, "VALIDATION_ERROR"},
	ErrFileNotSupported:     {BadRequest, "VALIDATION_ERROR"},
	ErrUnauthorized:         {Unauthorized, "UNAUTHORIZED"},
	ErrForbidden:            {Forbidden, "FORBIDDEN"},
	ErrVideoNotFound:        {NotFound, "NOT_FOUND"},
	ErrCommentNotFound:      {NotFound, "NOT_FOUND"},
	ErrBusinessNotFound:     {NotFound, "NOT_FOUND"},
	ErrNotificationNotFound: {NotFound, "NOT_FOUND"},
	ErrAlreadyLiked:         {Conflict, "ALREADY_LIKED"},
	ErrNotLiked:             {Conflict, "NOT_LIKED"},
	ErrAlreadyFavorited:     {Conflict, "ALREADY_FAVORITED"},
	ErrNotFavorited:         {Conflict, "NOT_FAVORITED"},
	ErrInvalidParent:        {Unprocessable, "INVALID_PARENT"},
	ErrStorage:              {BadGateway, "STORAGE_ERROR"},
	ErrProcessing:           {BadGateway, "PROCESSING_ERROR"},
	UnExpectedError:         {InternalServerError, "INTERNAL"},
}

// ValidationError 字段级参数错误，errors.Is(err, ErrParamInvalid) 成立
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数 [%s] 不合法: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrParamInvalid
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Resolve 找到 err 链上登记过的哨兵错误
func Resolve(err error) (error, ErrorKind, bool) {
	for sentinel, kind := range ErrorMap {
		if errors.Is(err, sentinel) {
			return sentinel, kind, true
		}
	}
	return nil, ErrorKind{}, false
}
