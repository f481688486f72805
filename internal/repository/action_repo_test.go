package repository_test

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/database"
	"Showcase/internal/repository"
	"Showcase/internal/repository/repotest"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionRepo_LikeUniqueness(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewActionRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateLike(ctx, &model.VideoLike{VideoID: 1, UserID: 2}))
	err := repo.CreateLike(ctx, &model.VideoLike{VideoID: 1, UserID: 2})
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))

	liked, err := repo.CheckLikeExists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)

	n, err := repo.DeleteLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.DeleteLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func seedComment(t *testing.T, repo repository.ActionRepo, videoID, userID uint64, parent *uint64) *model.VideoComment {
	t.Helper()
	c := &model.VideoComment{VideoID: videoID, UserID: userID, ParentID: parent, Content: "hi"}
	require.NoError(t, repo.CreateComment(context.Background(), c))
	return c
}

func TestActionRepo_RootCommentsKeepDeletedWithReplies(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewActionRepo(db)
	ctx := context.Background()

	r1 := seedComment(t, repo, 1, 10, nil)
	r2 := seedComment(t, repo, 1, 10, nil)
	r3 := seedComment(t, repo, 1, 10, nil)
	seedComment(t, repo, 2, 10, nil)
	seedComment(t, repo, 1, 11, &r2.ID)

	_, err := repo.SoftDeleteComment(ctx, r2.ID)
	require.NoError(t, err)
	_, err = repo.SoftDeleteComment(ctx, r3.ID)
	require.NoError(t, err)

	roots, err := repo.GetRootComments(ctx, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, r2.ID, roots[0].ID)
	assert.True(t, roots[0].IsDeleted)
	assert.Equal(t, r1.ID, roots[1].ID)

	paged, err := repo.GetRootComments(ctx, 1, r2.ID, 10)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, r1.ID, paged[0].ID)
}

func TestActionRepo_RepliesAndCounts(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewActionRepo(db)
	ctx := context.Background()

	root := seedComment(t, repo, 1, 10, nil)
	other := seedComment(t, repo, 1, 10, nil)
	a := seedComment(t, repo, 1, 11, &root.ID)
	b := seedComment(t, repo, 1, 12, &root.ID)
	c := seedComment(t, repo, 1, 13, &root.ID)
	_, err := repo.SoftDeleteComment(ctx, b.ID)
	require.NoError(t, err)

	replies, err := repo.GetReplies(ctx, root.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, a.ID, replies[0].ID)
	assert.Equal(t, c.ID, replies[1].ID)

	after, err := repo.GetReplies(ctx, root.ID, a.ID, 10)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, c.ID, after[0].ID)

	counts, err := repo.CountReplies(ctx, []uint64{root.ID, other.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[root.ID])
	assert.EqualValues(t, 0, counts[other.ID])
}

func TestActionRepo_DeletedCommentIsNotFound(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewActionRepo(db)
	ctx := context.Background()
	c := seedComment(t, repo, 1, 10, nil)

	n, err := repo.SoftDeleteComment(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.SoftDeleteComment(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = repo.GetCommentByID(ctx, c.ID)
	assert.Error(t, err)
}

func TestActionRepo_CommentLikes(t *testing.T) {
	db := repotest.NewDB(t)
	repo := repository.NewActionRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateCommentLike(ctx, &model.CommentLike{CommentID: 5, UserID: 1}))
	err := repo.CreateCommentLike(ctx, &model.CommentLike{CommentID: 5, UserID: 1})
	assert.True(t, database.IsDuplicateKey(err))
	require.NoError(t, repo.CreateCommentLike(ctx, &model.CommentLike{CommentID: 6, UserID: 2}))

	liked, err := repo.GetLikedCommentIDs(ctx, 1, []uint64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, map[uint64]bool{5: true}, liked)

	n, err := repo.DeleteCommentLike(ctx, 5, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
