package service

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/pkg/mongo"
	"context"
	"errors"
	log "log/slog"
	"time"
	"unicode/utf8"

	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

const previewRunes = 60

// NotificationEvent 领域事件，由点赞、评论、转码结果等触发
type NotificationEvent struct {
	ReceiverID uint64
	SenderID   uint64
	Kind       mongo.NotificationKind
	Target     model.Target
	Content    string
	Payload    map[string]any
}

type NotificationService interface {
	Notify(ctx context.Context, ev NotificationEvent)
	GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	repo mongo.NotificationRepo
	now  func() time.Time
}

// NewNotificationService repo 为 nil 时通知功能关闭
func NewNotificationService(repo mongo.NotificationRepo) NotificationService {
	return &notificationServiceImpl{repo: repo, now: time.Now}
}

// Notify 尽力投递，失败只记录日志；自己触发的事件不通知自己
func (s *notificationServiceImpl) Notify(ctx context.Context, ev NotificationEvent) {
	if s.repo == nil || ev.ReceiverID == 0 || ev.ReceiverID == ev.SenderID || ev.Target == nil {
		return
	}
	msg := &mongo.NotificationModel{
		ReceiverID: ev.ReceiverID,
		SenderID:   ev.SenderID,
		Kind:       ev.Kind,
		TargetType: string(ev.Target.Type()),
		TargetID:   ev.Target.ID(),
		Content:    preview(ev.Content),
		Payload:    ev.Payload,
		CreatedAt:  s.now().UTC(),
	}
	if msg.Content == "" {
		msg.Content = defaultContent(ev.Kind, ev.Target)
	}
	if err := s.repo.CreateNotification(ctx, msg); err != nil {
		log.WarnContext(ctx, "create notification failed", "kind", ev.Kind, "receiver", ev.ReceiverID, "err", err)
	}
}

func (s *notificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	res := make([]*dto.NotificationDTO, 0)
	if s.repo == nil {
		return res, nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	list, err := s.repo.GetNotificationList(ctx, userID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		res = append(res, &dto.NotificationDTO{
			ID:         m.ID.Hex(),
			SenderID:   m.SenderID,
			Kind:       string(m.Kind),
			TargetType: m.TargetType,
			TargetID:   m.TargetID,
			Content:    m.Content,
			Payload:    m.Payload,
			IsRead:     m.IsRead,
			CreatedAt:  formatTime(m.CreatedAt),
		})
	}
	return res, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	if s.repo == nil {
		return &dto.NotificationUnreadDTO{}, nil
	}
	count, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	if s.repo == nil {
		return ErrNotificationNotFound
	}
	err := s.repo.MarkAsRead(ctx, userID, msgID)
	if errors.Is(err, mongoDB.ErrNoDocuments) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.MarkAllAsRead(ctx, userID)
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	return string([]rune(text)[:previewRunes]) + "…"
}

func defaultContent(kind mongo.NotificationKind, target model.Target) string {
	switch kind {
	case mongo.NotifyVideoLiked:
		return "赞了你的视频"
	case mongo.NotifyVideoPublished:
		return "视频已发布"
	case mongo.NotifyVideoFailed:
		return "视频处理失败"
	case mongo.NotifyTargetFavorited:
		switch target.(type) {
		case model.BusinessTarget:
			return "收藏了你的店铺"
		case model.VideoTarget:
			return "收藏了你的视频"
		case model.ProductTarget:
			return "收藏了你的商品"
		}
	}
	return ""
}
