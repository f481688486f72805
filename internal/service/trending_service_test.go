package service

import (
	"Showcase/internal/api/config"
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/repository/repotest"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendingScore(t *testing.T) {
	v := &model.Video{LikeCount: 3, CommentCount: 2, ShareCount: 1, ViewCount: 1000}
	assert.EqualValues(t, 9, TrendingScore(v))
}

func TestTrendingService_RanksWithinWindow(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()
	svc := NewTrendingService(env.feeds, config.TrendingConfig{Window: 24 * time.Hour}, testFeedConfig())

	liked := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(0, 5, 0, 0), repotest.WithCreatedAt(now.Add(-time.Hour)))
	shared := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(2, 0, 0, 9), repotest.WithCreatedAt(now.Add(-2*time.Hour)))
	tieLowViews := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(1, 0, 9, 0), repotest.WithCreatedAt(now.Add(-3*time.Hour)))
	repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(0, 100, 0, 0), repotest.WithCreatedAt(now.Add(-48*time.Hour)))
	repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(0, 100, 0, 0), repotest.WithPrivate())

	out, err := svc.GetTrending(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{liked.PublicID, shared.PublicID, tieLowViews.PublicID}, publicIDs(out.List))
}

func TestTrendingService_CachesResult(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTrendingService(env.feeds, config.TrendingConfig{CacheTTL: time.Minute}, testFeedConfig())
	first := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(0, 1, 0, 0))

	out, err := svc.GetTrending(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, out.List, 1)
	assert.True(t, env.mr.Exists(consts.TrendingCacheKey+"5"))

	repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(0, 10, 0, 0))
	cached, err := svc.GetTrending(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{first.PublicID}, publicIDs(cached.List))

	env.mr.FastForward(2 * time.Minute)
	fresh, err := svc.GetTrending(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, fresh.List, 2)
}
