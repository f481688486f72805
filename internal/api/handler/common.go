package handler

import (
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/response"
	"Showcase/internal/pkg/util"
	"Showcase/internal/service"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// uintParam 解析路径上的数字 id，非法时直接返回参数错误
func uintParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) uint64 {
	return c.GetUint64(consts.UserIDKey)
}

// bindQuery 绑定并校验 query 参数
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

// bindJSON 绑定并校验请求体
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			response.Error(c, err)
		} else {
			response.Error(c, service.ErrParamInvalid)
		}
		return false
	}
	if err := util.ValidateDTO(obj); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}
