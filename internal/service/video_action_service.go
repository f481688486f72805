package service

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/database"
	"Showcase/internal/pkg/mongo"
	"Showcase/internal/pkg/util"
	"Showcase/internal/repository"
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type VideoActionService interface {
	Like(ctx context.Context, userID uint64, publicID string) error
	Unlike(ctx context.Context, userID uint64, publicID string) error
	IsLikedBy(ctx context.Context, videoID, userID uint64) (bool, error)
	Share(ctx context.Context, publicID string) (*dto.ShareDTO, error)
	GetState(ctx context.Context, viewerID uint64, publicID string) (*dto.VideoStateDTO, error)

	AddComment(ctx context.Context, userID uint64, publicID string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetComments(ctx context.Context, viewerID uint64, publicID string, cursor string, limit int) (*dto.CursorPageDTO[*dto.CommentDTO], error)
	GetReplies(ctx context.Context, viewerID, commentID uint64, cursor string, limit int) (*dto.CursorPageDTO[*dto.CommentDTO], error)

	LikeComment(ctx context.Context, userID, commentID uint64) error
	UnlikeComment(ctx context.Context, userID, commentID uint64) error
}

type videoActionServiceImpl struct {
	tx           repository.Transactor
	videoRepo    repository.VideoRepo
	actionRepo   repository.ActionRepo
	favoriteRepo repository.FavoriteRepo
	ledger       CounterLedger
	notifier     NotificationService
	now          func() time.Time
}

func NewVideoActionService(
	tx repository.Transactor,
	videoRepo repository.VideoRepo,
	actionRepo repository.ActionRepo,
	favoriteRepo repository.FavoriteRepo,
	ledger CounterLedger,
	notifier NotificationService,
) VideoActionService {
	return &videoActionServiceImpl{
		tx:           tx,
		videoRepo:    videoRepo,
		actionRepo:   actionRepo,
		favoriteRepo: favoriteRepo,
		ledger:       ledger,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Like 插入点赞与 like_count+1 同一事务，主键冲突即重复点赞
func (s *videoActionServiceImpl) Like(ctx context.Context, userID uint64, publicID string) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	video, err := loadActiveVideo(ctx, s.videoRepo, publicID)
	if err != nil {
		return err
	}
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		like := &model.VideoLike{VideoID: video.ID, UserID: userID, CreatedAt: s.now().UTC()}
		if err := s.actionRepo.CreateLike(ctx, like); err != nil {
			if database.IsDuplicateKey(err) {
				return ErrAlreadyLiked
			}
			return err
		}
		return s.ledger.Increment(ctx, video.ID, model.CounterLikeCount, 1)
	})
	if err != nil {
		return err
	}
	s.notifier.Notify(ctx, NotificationEvent{
		ReceiverID: video.Business.OwnerUserID,
		SenderID:   userID,
		Kind:       mongo.NotifyVideoLiked,
		Target:     model.VideoTarget{VideoID: video.ID},
		Payload:    map[string]any{"public_id": video.PublicID, "title": video.Title},
	})
	return nil
}

func (s *videoActionServiceImpl) Unlike(ctx context.Context, userID uint64, publicID string) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	video, err := loadActiveVideo(ctx, s.videoRepo, publicID)
	if err != nil {
		return err
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		n, err := s.actionRepo.DeleteLike(ctx, video.ID, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotLiked
		}
		return s.ledger.Decrement(ctx, video.ID, model.CounterLikeCount, 1)
	})
}

// IsLikedBy 匿名用户恒为 false
func (s *videoActionServiceImpl) IsLikedBy(ctx context.Context, videoID, userID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.actionRepo.CheckLikeExists(ctx, videoID, userID)
}

// Share 分享入口不鉴权，只对公开的已发布视频计数
func (s *videoActionServiceImpl) Share(ctx context.Context, publicID string) (*dto.ShareDTO, error) {
	video, err := loadVisibleVideo(ctx, s.videoRepo, 0, publicID)
	if err != nil {
		return nil, err
	}
	if err = s.ledger.Increment(ctx, video.ID, model.CounterShareCount, 1); err != nil {
		return nil, err
	}
	fresh, err := s.videoRepo.GetVideoByID(ctx, video.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ShareDTO{ShareCount: fresh.ShareCount}, nil
}

func (s *videoActionServiceImpl) GetState(ctx context.Context, viewerID uint64, publicID string) (*dto.VideoStateDTO, error) {
	video, err := loadVisibleVideo(ctx, s.videoRepo, viewerID, publicID)
	if err != nil {
		return nil, err
	}
	state := &dto.VideoStateDTO{
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		CommentCount: video.CommentCount,
		ShareCount:   video.ShareCount,
	}
	if viewerID == 0 {
		return state, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		liked, err := s.IsLikedBy(gCtx, video.ID, viewerID)
		state.IsLiked = liked
		return err
	})
	g.Go(func() error {
		fav, err := s.favoriteRepo.CheckFavoriteExists(gCtx, viewerID, model.VideoTarget{VideoID: video.ID})
		state.IsFavorited = fav
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

// AddComment 评论写入与 comment_count+1 同一事务
func (s *videoActionServiceImpl) AddComment(ctx context.Context, userID uint64, publicID string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	text := strings.TrimSpace(req.Content)
	if n := utf8.RuneCountInString(text); n == 0 || n > consts.CommentMaxRunes {
		return nil, invalid("content", "length must be between 1 and 500 characters")
	}
	video, err := loadActiveVideo(ctx, s.videoRepo, publicID)
	if err != nil {
		return nil, err
	}

	var parent *model.VideoComment
	if req.ParentID > 0 {
		parent, err = s.actionRepo.GetCommentByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
		if parent.VideoID != video.ID {
			return nil, ErrInvalidParent
		}
	}

	now := s.now().UTC()
	comment := &model.VideoComment{
		VideoID:   video.ID,
		UserID:    userID,
		Content:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.actionRepo.CreateComment(ctx, comment); err != nil {
			return err
		}
		return s.ledger.Increment(ctx, video.ID, model.CounterCommentCount, 1)
	})
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"public_id": video.PublicID, "comment_id": comment.ID}
	s.notifier.Notify(ctx, NotificationEvent{
		ReceiverID: video.Business.OwnerUserID,
		SenderID:   userID,
		Kind:       mongo.NotifyVideoCommented,
		Target:     model.VideoTarget{VideoID: video.ID},
		Content:    text,
		Payload:    payload,
	})
	if parent != nil && parent.UserID != video.Business.OwnerUserID {
		s.notifier.Notify(ctx, NotificationEvent{
			ReceiverID: parent.UserID,
			SenderID:   userID,
			Kind:       mongo.NotifyCommentReplied,
			Target:     model.VideoTarget{VideoID: video.ID},
			Content:    text,
			Payload:    payload,
		})
	}
	return toCommentDTO(comment, video.PublicID), nil
}

// DeleteComment 只有作者能删，回复不级联
func (s *videoActionServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrForbidden
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		n, err := s.actionRepo.SoftDeleteComment(ctx, commentID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrCommentNotFound
		}
		return s.ledger.Decrement(ctx, comment.VideoID, model.CounterCommentCount, 1)
	})
}

// GetComments 一级评论倒序，每条附带最多 3 条回复
func (s *videoActionServiceImpl) GetComments(ctx context.Context, viewerID uint64, publicID string, cursor string, limit int) (*dto.CursorPageDTO[*dto.CommentDTO], error) {
	video, err := loadVisibleVideo(ctx, s.videoRepo, viewerID, publicID)
	if err != nil {
		return nil, err
	}
	cursorID, err := util.DecodeIDCursor(cursor)
	if err != nil {
		return nil, invalid("cursor", "malformed cursor")
	}
	limit = clampLimit(limit, consts.DefaultReplyLimit, consts.MaxReplyLimit)

	roots, err := s.actionRepo.GetRootComments(ctx, video.ID, cursorID, limit)
	if err != nil {
		return nil, err
	}
	page := &dto.CursorPageDTO[*dto.CommentDTO]{List: make([]*dto.CommentDTO, 0, len(roots))}
	if len(roots) == 0 {
		return page, nil
	}

	rootIDs := make([]uint64, 0, len(roots))
	for _, r := range roots {
		rootIDs = append(rootIDs, r.ID)
	}

	replies := make([][]*model.VideoComment, len(roots))
	var counts map[uint64]int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	g.Go(func() error {
		var err error
		counts, err = s.actionRepo.CountReplies(gCtx, rootIDs)
		return err
	})
	for i, r := range roots {
		g.Go(func() error {
			list, err := s.actionRepo.GetReplies(gCtx, r.ID, 0, consts.InlineReplyLimit)
			replies[i] = list
			return err
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	allIDs := append([]uint64{}, rootIDs...)
	for _, list := range replies {
		for _, c := range list {
			allIDs = append(allIDs, c.ID)
		}
	}
	liked, err := s.actionRepo.GetLikedCommentIDs(ctx, viewerID, allIDs)
	if err != nil {
		return nil, err
	}

	for i, r := range roots {
		item := toCommentDTO(r, video.PublicID)
		item.IsLiked = liked[r.ID]
		item.ReplyCount = counts[r.ID]
		for _, c := range replies[i] {
			reply := toCommentDTO(c, video.PublicID)
			reply.IsLiked = liked[c.ID]
			item.Replies = append(item.Replies, reply)
		}
		page.List = append(page.List, item)
	}
	page.NextCursor = util.EncodeIDCursor(roots[len(roots)-1].ID)
	return page, nil
}

// GetReplies 回复按时间正序，游标为上一页最后一条的 id
func (s *videoActionServiceImpl) GetReplies(ctx context.Context, viewerID, commentID uint64, cursor string, limit int) (*dto.CursorPageDTO[*dto.CommentDTO], error) {
	afterID, err := util.DecodeIDCursor(cursor)
	if err != nil {
		return nil, invalid("cursor", "malformed cursor")
	}
	limit = clampLimit(limit, consts.DefaultReplyLimit, consts.MaxReplyLimit)

	list, err := s.actionRepo.GetReplies(ctx, commentID, afterID, limit)
	if err != nil {
		return nil, err
	}
	page := &dto.CursorPageDTO[*dto.CommentDTO]{List: make([]*dto.CommentDTO, 0, len(list))}
	if len(list) == 0 {
		return page, nil
	}

	video, err := s.videoRepo.GetVideoByID(ctx, list[0].VideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.IsDeleted {
		return nil, ErrVideoNotFound
	}

	ids := make([]uint64, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	liked, err := s.actionRepo.GetLikedCommentIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		item := toCommentDTO(c, video.PublicID)
		item.IsLiked = liked[c.ID]
		page.List = append(page.List, item)
	}
	page.NextCursor = util.EncodeIDCursor(list[len(list)-1].ID)
	return page, nil
}

func (s *videoActionServiceImpl) LikeComment(ctx context.Context, userID, commentID uint64) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if _, err := s.getComment(ctx, commentID); err != nil {
		return err
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		cl := &model.CommentLike{CommentID: commentID, UserID: userID, CreatedAt: s.now().UTC()}
		if err := s.actionRepo.CreateCommentLike(ctx, cl); err != nil {
			if database.IsDuplicateKey(err) {
				return ErrAlreadyLiked
			}
			return err
		}
		return s.ledger.IncrementCommentLikes(ctx, commentID)
	})
}

func (s *videoActionServiceImpl) UnlikeComment(ctx context.Context, userID, commentID uint64) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if _, err := s.getComment(ctx, commentID); err != nil {
		return err
	}
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		n, err := s.actionRepo.DeleteCommentLike(ctx, commentID, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotLiked
		}
		return s.ledger.DecrementCommentLikes(ctx, commentID)
	})
}

func (s *videoActionServiceImpl) getComment(ctx context.Context, commentID uint64) (*model.VideoComment, error) {
	c, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return c, nil
}
