package handler

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/api/middleware"
	"Showcase/internal/model"
	"Showcase/internal/pkg/response"
	"Showcase/internal/service"

	"github.com/gin-gonic/gin"
)

// InternalHandler 转码 Worker 的 HTTP 回调
type InternalHandler struct {
	videoSvc service.VideoService
}

func NewInternalHandler(videoSvc service.VideoService) *InternalHandler {
	return &InternalHandler{videoSvc: videoSvc}
}

func (s *InternalHandler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	internal := api.Group("/internal")
	internal.Use(guards.Worker)
	{
		internal.POST("/videos/processing-result", s.ProcessingResult)
	}
}

func (s *InternalHandler) ProcessingResult(c *gin.Context) {
	var req dto.ProcessingResultDTO
	if !bindJSON(c, &req) {
		return
	}
	res := &model.ProcessingResult{
		VideoID:  req.VideoID,
		PublicID: req.PublicID,
		Outcome:  model.ProcessingOutcome(req.Outcome),
		Error:    req.Error,
	}
	if req.Media != nil {
		res.Media = &model.MediaMeta{
			VideoURL:     req.Media.VideoURL,
			ThumbnailURL: req.Media.ThumbnailURL,
			Duration:     req.Media.Duration,
			Format:       req.Media.Format,
			Resolution:   req.Media.Resolution,
		}
	}
	if err := s.videoSvc.HandleProcessingResult(c.Request.Context(), res); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
