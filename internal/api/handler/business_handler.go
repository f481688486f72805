package handler

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/api/middleware"
	"Showcase/internal/pkg/response"
	"Showcase/internal/service"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	videoSvc service.VideoService
	feedSvc  service.FeedService
}

func NewBusinessHandler(videoSvc service.VideoService, feedSvc service.FeedService) *BusinessHandler {
	return &BusinessHandler{videoSvc: videoSvc, feedSvc: feedSvc}
}

func (s *BusinessHandler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	businesses := api.Group("/businesses")
	{
		businesses.GET("/:business_id/videos", guards.AuthOptional, s.ListVideos)
		businesses.POST("/:business_id/videos", guards.Auth, s.SubmitVideo)
	}
}

// ListVideos 店主能看到处理中和失败的视频
func (s *BusinessHandler) ListVideos(c *gin.Context) {
	businessID, ok := uintParam(c, "business_id")
	if !ok {
		return
	}
	var q dto.CursorQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.feedSvc.ListBusinessVideos(c.Request.Context(), businessID, currentUser(c), q.Cursor, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SubmitVideo 提交原始视频，返回 processing 状态的视频
func (s *BusinessHandler) SubmitVideo(c *gin.Context) {
	businessID, ok := uintParam(c, "business_id")
	if !ok {
		return
	}
	var req dto.SubmitVideoDTO
	if !bindJSON(c, &req) {
		return
	}
	res, err := s.videoSvc.Submit(c.Request.Context(), currentUser(c), businessID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
