package service

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/pkg/database"
	"Showcase/internal/pkg/mongo"
	"Showcase/internal/pkg/util"
	"Showcase/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID uint64, req *dto.FavoriteReq) error
	RemoveFavorite(ctx context.Context, userID uint64, req *dto.FavoriteReq) error
	ListFavorites(ctx context.Context, userID uint64, q *dto.FavoriteQueryDTO) (*dto.CursorPageDTO[*dto.FavoriteDTO], error)
}

type favoriteServiceImpl struct {
	favoriteRepo repository.FavoriteRepo
	videoRepo    repository.VideoRepo
	businessRepo repository.BusinessRepo
	notifier     NotificationService
	now          func() time.Time
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepo,
	videoRepo repository.VideoRepo,
	businessRepo repository.BusinessRepo,
	notifier NotificationService,
) FavoriteService {
	return &favoriteServiceImpl{
		favoriteRepo: favoriteRepo,
		videoRepo:    videoRepo,
		businessRepo: businessRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *favoriteServiceImpl) AddFavorite(ctx context.Context, userID uint64, req *dto.FavoriteReq) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	target, err := model.ParseTarget(req.TargetType, req.TargetID)
	if err != nil {
		return invalid("target_type", err.Error())
	}
	ownerID, err := s.resolveOwner(ctx, target)
	if err != nil {
		return err
	}
	if err = s.favoriteRepo.CreateFavorite(ctx, model.NewFavorite(userID, target, s.now().UTC())); err != nil {
		if database.IsDuplicateKey(err) {
			return ErrAlreadyFavorited
		}
		return err
	}
	s.notifier.Notify(ctx, NotificationEvent{
		ReceiverID: ownerID,
		SenderID:   userID,
		Kind:       mongo.NotifyTargetFavorited,
		Target:     target,
	})
	return nil
}

func (s *favoriteServiceImpl) RemoveFavorite(ctx context.Context, userID uint64, req *dto.FavoriteReq) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	target, err := model.ParseTarget(req.TargetType, req.TargetID)
	if err != nil {
		return invalid("target_type", err.Error())
	}
	n, err := s.favoriteRepo.DeleteFavorite(ctx, userID, target)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFavorited
	}
	return nil
}

func (s *favoriteServiceImpl) ListFavorites(ctx context.Context, userID uint64, q *dto.FavoriteQueryDTO) (*dto.CursorPageDTO[*dto.FavoriteDTO], error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	cursorID, err := util.DecodeIDCursor(q.Cursor)
	if err != nil {
		return nil, invalid("cursor", "malformed cursor")
	}
	list, err := s.favoriteRepo.ListFavorites(ctx, userID, model.TargetType(q.Type), cursorID,
		clampLimit(q.Limit, 20, 50))
	if err != nil {
		return nil, err
	}
	page := &dto.CursorPageDTO[*dto.FavoriteDTO]{List: make([]*dto.FavoriteDTO, 0, len(list))}
	for _, f := range list {
		page.List = append(page.List, &dto.FavoriteDTO{
			ID:         f.ID,
			TargetType: f.TargetType,
			TargetID:   f.TargetID,
			CreatedAt:  formatTime(f.CreatedAt),
		})
	}
	if len(list) > 0 {
		page.NextCursor = util.EncodeIDCursor(list[len(list)-1].ID)
	}
	return page, nil
}

// resolveOwner 校验目标存在并返回被通知的用户；商品由外部商城维护，不做校验
func (s *favoriteServiceImpl) resolveOwner(ctx context.Context, target model.Target) (uint64, error) {
	switch t := target.(type) {
	case model.VideoTarget:
		v, err := s.videoRepo.GetVideoByID(ctx, t.VideoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrVideoNotFound
			}
			return 0, err
		}
		if v.IsDeleted {
			return 0, ErrVideoNotFound
		}
		b, err := s.businessRepo.GetBusinessByID(ctx, v.BusinessID)
		if err != nil {
			return 0, nil
		}
		return b.OwnerUserID, nil
	case model.BusinessTarget:
		b, err := s.businessRepo.GetBusinessByID(ctx, t.BusinessID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrBusinessNotFound
			}
			return 0, err
		}
		return b.OwnerUserID, nil
	case model.ProductTarget:
		return 0, nil
	default:
		return 0, invalid("target_type", model.ErrUnknownTarget.Error())
	}
}
