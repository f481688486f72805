package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationKind 通知类型
type NotificationKind string

const (
	NotifyVideoLiked      NotificationKind = "video_liked"
	NotifyVideoCommented  NotificationKind = "video_commented"
	NotifyCommentReplied  NotificationKind = "comment_replied"
	NotifyVideoPublished  NotificationKind = "video_published"
	NotifyVideoFailed     NotificationKind = "video_failed"
	NotifyTargetFavorited NotificationKind = "target_favorited"
)

// NotificationModel 通知模型
type NotificationModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"` // 接收者
	SenderID   uint64             `bson:"sender_id" json:"senderId"`     // 发起者，系统通知为 0
	Kind       NotificationKind   `bson:"kind" json:"kind"`
	TargetType string             `bson:"target_type" json:"targetType"`
	TargetID   uint64             `bson:"target_id" json:"targetId"`
	Content    string             `bson:"content" json:"content"` // 文案预览或评论片段
	Payload    map[string]any     `bson:"payload" json:"payload"`
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
