package middleware

import "github.com/gin-gonic/gin"

// Guards 各模块注册路由时按需挂载的鉴权中间件
type Guards struct {
	Auth         gin.HandlerFunc
	AuthOptional gin.HandlerFunc
	Worker       gin.HandlerFunc
}
