package middleware

import (
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/response"
	"Showcase/internal/pkg/security"
	"Showcase/internal/service"
	"crypto/subtle"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(verifier *security.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := security.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, service.ErrUnauthorized)
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			response.Error(c, service.ErrUnauthorized)
			return
		}

		c.Set(consts.UserIDKey, claims.UserID)
		c.Set(consts.RolesKey, claims.Roles)
		c.Next()
	}
}

// WorkerTokenMiddleware 转码 Worker 回调只认共享令牌，未配置令牌时拒绝所有请求
func WorkerTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(consts.WorkerTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Error(c, service.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
