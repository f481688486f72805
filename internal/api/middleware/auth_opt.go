package middleware

import (
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为 0
func AuthOptionalMiddleware(verifier *security.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(consts.UserIDKey, uint64(0))
		if token, ok := security.BearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := verifier.ValidateToken(token); err == nil {
				c.Set(consts.UserIDKey, claims.UserID)
				c.Set(consts.RolesKey, claims.Roles)
			}
		}
		c.Next()
	}
}
