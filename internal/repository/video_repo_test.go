package repository_test

import (
	"Showcase/internal/model"
	"Showcase/internal/repository"
	"Showcase/internal/repository/repotest"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepo_CreateVideoWithTags(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewVideoRepo(db)
	ctx := context.Background()
	b := repotest.SeedBusiness(t, db, 1, "cafe")

	v := &model.Video{
		PublicID:   uuid.NewString(),
		BusinessID: b.ID,
		Title:      "Latte art",
		SourceURL:  "s3://raw/latte.mov",
		IsPublic:   true,
		Status:     model.VideoStatusProcessing,
	}
	require.NoError(t, repo.CreateVideo(ctx, v, []string{"coffee", "latte"}))
	require.NotZero(t, v.ID)

	got, err := repo.GetVideoByPublicID(ctx, v.PublicID)
	require.NoError(t, err)
	assert.Equal(t, model.VideoStatusProcessing, got.Status)
	assert.ElementsMatch(t, []string{"coffee", "latte"}, got.TagNames())
	assert.Equal(t, "cafe", got.Business.Type)
}

func TestVideoRepo_CreateVideoRollsBackOnDuplicateTag(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewVideoRepo(db)
	ctx := context.Background()

	v := &model.Video{PublicID: uuid.NewString(), BusinessID: 1, Title: "t", Status: model.VideoStatusProcessing}
	err := repo.CreateVideo(ctx, v, []string{"dup", "dup"})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&model.Video{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVideoRepo_TransitionStatusIsCompareAndSwap(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewVideoRepo(db)
	ctx := context.Background()
	v := repotest.SeedVideo(t, db, 1, repotest.WithStatus(model.VideoStatusProcessing))

	ok, err := repo.TransitionStatus(ctx, v.ID, model.VideoStatusProcessing, model.VideoStatusPublished,
		map[string]any{"video_url": "https://cdn/v.mp4"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, v.ID, model.VideoStatusProcessing, model.VideoStatusFailed,
		map[string]any{"processing_error": "late failure"})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetVideoByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VideoStatusPublished, got.Status)
	assert.Equal(t, "https://cdn/v.mp4", got.VideoURL)
	assert.Empty(t, got.ProcessingError)
}

func TestVideoRepo_TransitionStatusSkipsDeleted(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewVideoRepo(db)
	v := repotest.SeedVideo(t, db, 1, repotest.WithStatus(model.VideoStatusProcessing), repotest.WithDeleted())

	ok, err := repo.TransitionStatus(context.Background(), v.ID, model.VideoStatusProcessing, model.VideoStatusFailed, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVideoRepo_ListStaleProcessing(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewVideoRepo(db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	old := repotest.SeedVideo(t, db, 1, repotest.WithStatus(model.VideoStatusProcessing), repotest.WithCreatedAt(now.Add(-10*time.Hour)))
	repotest.SeedVideo(t, db, 1, repotest.WithStatus(model.VideoStatusProcessing), repotest.WithCreatedAt(now.Add(-time.Hour)))
	repotest.SeedVideo(t, db, 1, repotest.WithStatus(model.VideoStatusFailed), repotest.WithCreatedAt(now.Add(-10*time.Hour)))

	stale, err := repo.ListStaleProcessing(context.Background(), now.Add(-6*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.ID, stale[0].ID)
}

func TestVideoRepo_SoftDelete(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewVideoRepo(db)
	ctx := context.Background()
	v := repotest.SeedVideo(t, db, 1)

	require.NoError(t, repo.SoftDeleteVideo(ctx, v.ID))
	got, err := repo.GetVideoByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}
