package repository_test

import (
	"Showcase/internal/model"
	"Showcase/internal/repository"
	"Showcase/internal/repository/repotest"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCounterRepo_IncrementAndClampedDecrement(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewCounterRepo(db)
	ctx := context.Background()
	v := repotest.SeedVideo(t, db, 1, repotest.WithCounts(0, 1, 0, 0))

	require.NoError(t, repo.IncrVideoCounter(ctx, v.ID, model.CounterShareCount, 3))
	require.NoError(t, repo.DecrVideoCounter(ctx, v.ID, model.CounterLikeCount, 5))
	require.NoError(t, repo.DecrVideoCounter(ctx, v.ID, model.CounterLikeCount, 1))

	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 3, got.ShareCount)
	assert.EqualValues(t, 0, got.LikeCount)
}

func TestCounterRepo_IncrementMissingVideo(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewCounterRepo(db)

	err := repo.IncrVideoCounter(context.Background(), 404, model.CounterViewCount, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCounterRepo_ConcurrentIncrementsAreNotLost(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewCounterRepo(db)
	v := repotest.SeedVideo(t, db, 1)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrVideoCounter(context.Background(), v.ID, model.CounterViewCount, 1))
		}()
	}
	wg.Wait()

	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 20, got.ViewCount)
}

func TestCounterRepo_CommentLikes(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewCounterRepo(db)
	ctx := context.Background()
	c := &model.VideoComment{VideoID: 1, UserID: 2, Content: "nice"}
	require.NoError(t, db.Create(c).Error)

	require.NoError(t, repo.IncrCommentLikes(ctx, c.ID, 1))
	require.NoError(t, repo.DecrCommentLikes(ctx, c.ID, 1))
	require.NoError(t, repo.DecrCommentLikes(ctx, c.ID, 1))

	var got model.VideoComment
	require.NoError(t, db.First(&got, c.ID).Error)
	assert.EqualValues(t, 0, got.LikeCount)
}

func TestTransactor_RollsBackAllRepos(t *testing.T) {
	db := repotest.NewDB(t)
	tx := repository.NewTransactor(db)
	actions := repository.NewActionRepo(db)
	counters := repository.NewCounterRepo(db)
	v := repotest.SeedVideo(t, db, 1)

	err := tx.Transaction(context.Background(), func(ctx context.Context) error {
		if err := actions.CreateLike(ctx, &model.VideoLike{VideoID: v.ID, UserID: 7}); err != nil {
			return err
		}
		if err := counters.IncrVideoCounter(ctx, v.ID, model.CounterLikeCount, 1); err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	require.ErrorIs(t, err, gorm.ErrInvalidData)

	liked, err := actions.CheckLikeExists(context.Background(), v.ID, 7)
	require.NoError(t, err)
	assert.False(t, liked)
	var got model.Video
	require.NoError(t, db.First(&got, v.ID).Error)
	assert.EqualValues(t, 0, got.LikeCount)
}
