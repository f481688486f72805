package handler

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/api/middleware"
	"Showcase/internal/pkg/response"
	"Showcase/internal/service"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoSvc    service.VideoService
	feedSvc     service.FeedService
	trendingSvc service.TrendingService
	actionSvc   service.VideoActionService
}

func NewVideoHandler(
	videoSvc service.VideoService,
	feedSvc service.FeedService,
	trendingSvc service.TrendingService,
	actionSvc service.VideoActionService,
) *VideoHandler {
	return &VideoHandler{
		videoSvc:    videoSvc,
		feedSvc:     feedSvc,
		trendingSvc: trendingSvc,
		actionSvc:   actionSvc,
	}
}

func (s *VideoHandler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	videos := api.Group("/videos")
	{
		videos.GET("/trending", s.Trending)
		videos.GET("/search", s.Search)
		videos.POST("/:public_id/share", s.Share)

		optGroup := videos.Group("")
		optGroup.Use(guards.AuthOptional)
		{
			optGroup.GET("/feed", s.Feed)
			optGroup.GET("/:public_id", s.GetVideo)
			optGroup.GET("/:public_id/state", s.GetState)
			optGroup.GET("/:public_id/comments", s.GetComments)
		}

		authGroup := videos.Group("")
		authGroup.Use(guards.Auth)
		{
			authGroup.POST("/:public_id/like", s.Like)
			authGroup.DELETE("/:public_id/like", s.Unlike)
			authGroup.POST("/:public_id/comments", s.AddComment)
			authGroup.DELETE("/:public_id", s.Delete)
		}
	}
}

// Feed 首页信息流
func (s *VideoHandler) Feed(c *gin.Context) {
	var q dto.FeedQueryDTO
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.feedSvc.GetFeed(c.Request.Context(), service.FeedFilters{
		BusinessType: q.BusinessType,
		Hashtag:      q.Hashtag,
		Cursor:       q.Cursor,
		OrderBy:      q.OrderBy,
	}, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *VideoHandler) Trending(c *gin.Context) {
	var q dto.TrendingQueryDTO
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.trendingSvc.GetTrending(c.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *VideoHandler) Search(c *gin.Context) {
	var q dto.SearchQueryDTO
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.feedSvc.Search(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetVideo 视频详情，会记录一次播放
func (s *VideoHandler) GetVideo(c *gin.Context) {
	res, err := s.videoSvc.GetVideo(c.Request.Context(), currentUser(c), c.Param("public_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *VideoHandler) GetState(c *gin.Context) {
	res, err := s.actionSvc.GetState(c.Request.Context(), currentUser(c), c.Param("public_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *VideoHandler) Share(c *gin.Context) {
	res, err := s.actionSvc.Share(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *VideoHandler) Like(c *gin.Context) {
	if err := s.actionSvc.Like(c.Request.Context(), currentUser(c), c.Param("public_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *VideoHandler) Unlike(c *gin.Context) {
	if err := s.actionSvc.Unlike(c.Request.Context(), currentUser(c), c.Param("public_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *VideoHandler) GetComments(c *gin.Context) {
	var q dto.CursorQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actionSvc.GetComments(c.Request.Context(), currentUser(c), c.Param("public_id"), q.Cursor, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *VideoHandler) AddComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if !bindJSON(c, &req) {
		return
	}
	res, err := s.actionSvc.AddComment(c.Request.Context(), currentUser(c), c.Param("public_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Delete 店主软删除视频
func (s *VideoHandler) Delete(c *gin.Context) {
	if err := s.videoSvc.Delete(c.Request.Context(), currentUser(c), c.Param("public_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
