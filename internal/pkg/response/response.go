package response

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const Ok = 200

// Success 成功返回封装
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装，HTTP 状态码与业务码一致
func Fail(c *gin.Context, kind service.ErrorKind, message string, fields ...dto.FieldError) {
	c.AbortWithStatusJSON(kind.Code, dto.Response{
		Code:    kind.Code,
		Kind:    kind.Kind,
		Message: message,
		Data:    nil,
		Fields:  fields,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	badRequest := service.ErrorMap[service.ErrParamInvalid]

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]dto.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, dto.FieldError{Field: fe.Field(), Reason: fe.Tag()})
		}
		Fail(c, badRequest, service.ErrParamInvalid.Error(), fields...)
		return
	}

	var fieldErr *service.ValidationError
	if errors.As(err, &fieldErr) {
		Fail(c, badRequest, fieldErr.Error(), dto.FieldError{Field: fieldErr.Field, Reason: fieldErr.Reason})
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	var syntaxError *json.SyntaxError
	if errors.As(err, &unmarshalTypeError) || errors.As(err, &syntaxError) {
		Fail(c, badRequest, "Json错误")
		return
	}

	sentinel, kind, ok := service.Resolve(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "unexpected error", "path", c.FullPath(), "err", err)
		Fail(c, service.ErrorMap[service.UnExpectedError], service.UnExpectedError.Error())
		return
	}
	if kind.Code >= http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "dependency error", "path", c.FullPath(), "err", err)
	}
	Fail(c, kind, sentinel.Error())
}
