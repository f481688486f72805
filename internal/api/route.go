package api

import (
	"Showcase/internal/api/middleware"
	"Showcase/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Module 每个 handler 自己登记路由
type Module interface {
	RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards)
}

// RouterOptions 全局中间件参数
type RouterOptions struct {
	Guards         middleware.Guards
	AuditLimit     int
	AllowedOrigins []string
}

func SetupRouter(opts RouterOptions, modules ...Module) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware(opts.AuditLimit))
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	logger.SetupGin(r)

	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	apiGroup := r.Group("/api")
	apiGroup.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"code":    200,
			"message": "pong",
			"data":    nil,
		})
	})
	for _, m := range modules {
		m.RegisterRoutes(apiGroup, opts.Guards)
	}

	return r
}
