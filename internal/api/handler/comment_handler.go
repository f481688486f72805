package handler

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/api/middleware"
	"Showcase/internal/pkg/response"
	"Showcase/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	actionSvc service.VideoActionService
}

func NewCommentHandler(actionSvc service.VideoActionService) *CommentHandler {
	return &CommentHandler{actionSvc: actionSvc}
}

func (s *CommentHandler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	comments := api.Group("/comments")
	{
		comments.GET("/:comment_id/replies", guards.AuthOptional, s.GetReplies)

		authGroup := comments.Group("")
		authGroup.Use(guards.Auth)
		{
			authGroup.DELETE("/:comment_id", s.Delete)
			authGroup.POST("/:comment_id/like", s.Like)
			authGroup.DELETE("/:comment_id/like", s.Unlike)
		}
	}
}

func (s *CommentHandler) GetReplies(c *gin.Context) {
	commentID, ok := uintParam(c, "comment_id")
	if !ok {
		return
	}
	var q dto.CursorQuery
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.actionSvc.GetReplies(c.Request.Context(), currentUser(c), commentID, q.Cursor, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := uintParam(c, "comment_id")
	if !ok {
		return
	}
	if err := s.actionSvc.DeleteComment(c.Request.Context(), currentUser(c), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) Like(c *gin.Context) {
	commentID, ok := uintParam(c, "comment_id")
	if !ok {
		return
	}
	if err := s.actionSvc.LikeComment(c.Request.Context(), currentUser(c), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) Unlike(c *gin.Context) {
	commentID, ok := uintParam(c, "comment_id")
	if !ok {
		return
	}
	if err := s.actionSvc.UnlikeComment(c.Request.Context(), currentUser(c), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
