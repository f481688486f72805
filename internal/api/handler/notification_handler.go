package handler

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/api/middleware"
	"Showcase/internal/pkg/response"
	"Showcase/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (s *NotificationHandler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	notifications := api.Group("/notifications")
	notifications.Use(guards.Auth)
	{
		notifications.GET("", s.List)
		notifications.GET("/unread", s.UnreadCount)
		notifications.POST("/read", s.MarkRead)
		notifications.POST("/read/all", s.MarkAllRead)
	}
}

func (s *NotificationHandler) List(c *gin.Context) {
	var q dto.NotificationQueryDTO
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.notificationSvc.GetNotificationList(c.Request.Context(), currentUser(c), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *NotificationHandler) UnreadCount(c *gin.Context) {
	res, err := s.notificationSvc.GetUnreadCount(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	var req dto.NotificationReadReq
	if !bindJSON(c, &req) {
		return
	}
	if err := s.notificationSvc.MarkRead(c.Request.Context(), currentUser(c), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), currentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
