package repotest

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/database"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 内存 sqlite，单连接保证所有查询看到同一个库
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func SeedBusiness(t *testing.T, db *gorm.DB, ownerID uint64, typ string) *model.Business {
	t.Helper()
	b := &model.Business{OwnerUserID: ownerID, Name: "shop", Type: typ}
	require.NoError(t, db.Create(b).Error)
	return b
}

// VideoOption 调整种子视频
type VideoOption func(v *model.Video)

func WithStatus(s model.VideoStatus) VideoOption {
	return func(v *model.Video) { v.Status = s }
}

func WithCreatedAt(at time.Time) VideoOption {
	return func(v *model.Video) { v.CreatedAt = at.UTC() }
}

func WithCounts(views, likes, comments, shares int64) VideoOption {
	return func(v *model.Video) {
		v.ViewCount, v.LikeCount, v.CommentCount, v.ShareCount = views, likes, comments, shares
	}
}

func WithPrivate() VideoOption {
	return func(v *model.Video) { v.IsPublic = false }
}

func WithDeleted() VideoOption {
	return func(v *model.Video) { v.IsDeleted = true }
}

func WithText(title, description string) VideoOption {
	return func(v *model.Video) { v.Title, v.Description = title, description }
}

func WithTags(tags ...string) VideoOption {
	return func(v *model.Video) {
		for _, tag := range tags {
			v.Hashtags = append(v.Hashtags, model.VideoHashtag{Tag: tag})
		}
	}
}

// SeedVideo 默认是已发布的公开视频
func SeedVideo(t *testing.T, db *gorm.DB, businessID uint64, opts ...VideoOption) *model.Video {
	t.Helper()
	v := &model.Video{
		PublicID:   uuid.NewString(),
		BusinessID: businessID,
		Title:      "video",
		VideoURL:   "https://cdn.example.com/v.mp4",
		IsPublic:   true,
		Status:     model.VideoStatusPublished,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.Status != model.VideoStatusPublished {
		v.VideoURL = ""
	}
	tags := v.Hashtags
	v.Hashtags = nil
	require.NoError(t, db.Omit("Business", "Hashtags").Create(v).Error)
	for i := range tags {
		tags[i].VideoID = v.ID
	}
	if len(tags) > 0 {
		require.NoError(t, db.Create(&tags).Error)
	}
	v.Hashtags = tags
	return v
}
