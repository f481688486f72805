package handler

import (
	"Showcase/internal/api/middleware"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/response"
	"Showcase/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

func (s *MediaHandler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	api.POST("/media/upload", guards.Auth, s.Upload)
}

// Upload multipart 字段名为 file
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size <= 0 || file.Size > consts.MaxUploadBytes {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	res, err := s.mediaSvc.Upload(c.Request.Context(), currentUser(c), reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	log.InfoContext(c.Request.Context(), "media upload success", "url", res.URL, "mime", res.Mime, "original", file.Filename)
	response.Success(c, res)
}
