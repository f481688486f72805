package service

import (
	"Showcase/internal/api/config"
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/repository/repotest"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publicIDs(list []*dto.VideoDTO) []string {
	ids := make([]string, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.PublicID)
	}
	return ids
}

func TestFeedService_PagesWithoutDuplicates(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedService(env.feeds, env.videos, env.businesses, nil, testFeedConfig())
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	var want []string
	for i := 0; i < 5; i++ {
		v := repotest.SeedVideo(t, env.db, 1, repotest.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))
		want = append([]string{v.PublicID}, want...)
	}
	repotest.SeedVideo(t, env.db, 1, repotest.WithPrivate())
	repotest.SeedVideo(t, env.db, 1, repotest.WithStatus(model.VideoStatusProcessing))
	repotest.SeedVideo(t, env.db, 1, repotest.WithDeleted())

	var got []string
	cursor := ""
	for {
		page, err := svc.GetFeed(ctx, FeedFilters{Cursor: cursor}, 2)
		require.NoError(t, err)
		if len(page.List) == 0 {
			break
		}
		got = append(got, publicIDs(page.List)...)
		cursor = page.NextCursor
	}
	assert.Equal(t, want, got)
}

func TestFeedService_Filters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedService(env.feeds, env.videos, env.businesses, nil, testFeedConfig())
	ctx := context.Background()
	cafe := repotest.SeedBusiness(t, env.db, ownerID, "cafe")
	gym := repotest.SeedBusiness(t, env.db, ownerID, "gym")

	latte := repotest.SeedVideo(t, env.db, cafe.ID, repotest.WithTags("coffee"))
	repotest.SeedVideo(t, env.db, gym.ID, repotest.WithTags("coffee"))
	repotest.SeedVideo(t, env.db, cafe.ID, repotest.WithTags("tea"))

	page, err := svc.GetFeed(ctx, FeedFilters{BusinessType: "cafe", Hashtag: "#Coffee"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{latte.PublicID}, publicIDs(page.List))

	_, err = svc.GetFeed(ctx, FeedFilters{OrderBy: "random"}, 10)
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.GetFeed(ctx, FeedFilters{Cursor: "not-a-cursor"}, 10)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestFeedService_OrderByViews(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedService(env.feeds, env.videos, env.businesses, nil, testFeedConfig())
	low := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(1, 0, 0, 0))
	high := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(50, 0, 0, 0))

	page, err := svc.GetFeed(context.Background(), FeedFilters{OrderBy: "view_count"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{high.PublicID, low.PublicID}, publicIDs(page.List))
}

func TestFeedService_SearchFallsBackToDatabase(t *testing.T) {
	env := newTestEnv(t)
	idx := newFakeIndex()
	idx.searchErr = errBoom
	svc := NewFeedService(env.feeds, env.videos, env.businesses, idx, testFeedConfig())
	hit := repotest.SeedVideo(t, env.db, 1, repotest.WithText("Morning LATTE", ""))
	repotest.SeedVideo(t, env.db, 1, repotest.WithText("Espresso", ""))

	out, err := svc.Search(context.Background(), "latte", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{hit.PublicID}, publicIDs(out.List))

	_, err = svc.Search(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestFeedService_SearchReordersIndexHitsByViews(t *testing.T) {
	env := newTestEnv(t)
	a := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(1, 0, 0, 0))
	b := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(100, 0, 0, 0))
	hidden := repotest.SeedVideo(t, env.db, 1, repotest.WithPrivate(), repotest.WithCounts(500, 0, 0, 0))
	idx := newFakeIndex()
	idx.searchIDs = []uint64{a.ID, hidden.ID, b.ID, 9999}
	svc := NewFeedService(env.feeds, env.videos, env.businesses, idx, testFeedConfig())

	out, err := svc.Search(context.Background(), "nothing in sql", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{b.PublicID, a.PublicID}, publicIDs(out.List))

	out, err = svc.Search(context.Background(), "nothing in sql", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{b.PublicID}, publicIDs(out.List))
}

func TestFeedService_SearchTopsUpShortIndexPage(t *testing.T) {
	env := newTestEnv(t)
	indexed := repotest.SeedVideo(t, env.db, 1, repotest.WithText("Iced latte", ""), repotest.WithCounts(5, 0, 0, 0))
	missing := repotest.SeedVideo(t, env.db, 1, repotest.WithText("Latte art", ""), repotest.WithCounts(50, 0, 0, 0))
	repotest.SeedVideo(t, env.db, 1, repotest.WithText("Espresso", ""))
	idx := newFakeIndex()
	idx.searchIDs = []uint64{indexed.ID}
	svc := NewFeedService(env.feeds, env.videos, env.businesses, idx, testFeedConfig())

	out, err := svc.Search(context.Background(), "latte", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{missing.PublicID, indexed.PublicID}, publicIDs(out.List))
}

func TestFeedService_ListBusinessVideos(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFeedService(env.feeds, env.videos, env.businesses, nil, config.FeedConfig{DefaultLimit: 10, MaxLimit: 10})
	ctx := context.Background()
	b := repotest.SeedBusiness(t, env.db, ownerID, "cafe")
	live := repotest.SeedVideo(t, env.db, b.ID)
	pending := repotest.SeedVideo(t, env.db, b.ID, repotest.WithStatus(model.VideoStatusProcessing))
	repotest.SeedVideo(t, env.db, b.ID, repotest.WithDeleted())

	visitor, err := svc.ListBusinessVideos(ctx, b.ID, viewerID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{live.PublicID}, publicIDs(visitor.List))

	owner, err := svc.ListBusinessVideos(ctx, b.ID, ownerID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{pending.PublicID, live.PublicID}, publicIDs(owner.List))

	_, err = svc.ListBusinessVideos(ctx, 9999, ownerID, "", 0)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
