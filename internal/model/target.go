package model

import (
	"errors"
	"fmt"
)

// TargetType 收藏与通知指向的对象类型，落库时的判别字段
type TargetType string

const (
	TargetTypeBusiness TargetType = "business"
	TargetTypeVideo    TargetType = "video"
	TargetTypeProduct  TargetType = "product"
)

var ErrUnknownTarget = errors.New("unknown target type")

// Target 收藏/通知目标，只有本包内的三种实现
type Target interface {
	Type() TargetType
	ID() uint64
	sealed()
}

type BusinessTarget struct{ BusinessID uint64 }

type VideoTarget struct{ VideoID uint64 }

type ProductTarget struct{ ProductID uint64 }

func (t BusinessTarget) Type() TargetType { return TargetTypeBusiness }
func (t BusinessTarget) ID() uint64       { return t.BusinessID }
func (BusinessTarget) sealed()            {}

func (t VideoTarget) Type() TargetType { return TargetTypeVideo }
func (t VideoTarget) ID() uint64       { return t.VideoID }
func (VideoTarget) sealed()            {}

func (t ProductTarget) Type() TargetType { return TargetTypeProduct }
func (t ProductTarget) ID() uint64       { return t.ProductID }
func (ProductTarget) sealed()            {}

// ParseTarget 由判别字段还原目标
func ParseTarget(kind string, id uint64) (Target, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: empty id", ErrUnknownTarget)
	}
	switch TargetType(kind) {
	case TargetTypeBusiness:
		return BusinessTarget{BusinessID: id}, nil
	case TargetTypeVideo:
		return VideoTarget{VideoID: id}, nil
	case TargetTypeProduct:
		return ProductTarget{ProductID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, kind)
	}
}
