package handler

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/api/middleware"
	"Showcase/internal/pkg/response"
	"Showcase/internal/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteSvc service.FavoriteService
}

func NewFavoriteHandler(favoriteSvc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteSvc: favoriteSvc}
}

func (s *FavoriteHandler) RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards) {
	favorites := api.Group("/favorites")
	favorites.Use(guards.Auth)
	{
		favorites.GET("", s.List)
		favorites.POST("", s.Add)
		favorites.DELETE("", s.Remove)
	}
}

func (s *FavoriteHandler) Add(c *gin.Context) {
	var req dto.FavoriteReq
	if !bindJSON(c, &req) {
		return
	}
	if err := s.favoriteSvc.AddFavorite(c.Request.Context(), currentUser(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FavoriteHandler) Remove(c *gin.Context) {
	var req dto.FavoriteReq
	if !bindJSON(c, &req) {
		return
	}
	if err := s.favoriteSvc.RemoveFavorite(c.Request.Context(), currentUser(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FavoriteHandler) List(c *gin.Context) {
	var q dto.FavoriteQueryDTO
	if !bindQuery(c, &q) {
		return
	}
	res, err := s.favoriteSvc.ListFavorites(c.Request.Context(), currentUser(c), &q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
