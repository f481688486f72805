package service

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/repository/repotest"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterLedger_RejectsUnknownField(t *testing.T) {
	env := newTestEnv(t)
	v := repotest.SeedVideo(t, env.db, 1)

	err := env.ledger.Increment(context.Background(), v.ID, model.CounterField("rating"), 1)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "field", ve.Field)
	assert.ErrorIs(t, err, ErrParamInvalid)

	err = env.ledger.Decrement(context.Background(), v.ID, model.CounterLikeCount, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestCounterLedger_MissingVideo(t *testing.T) {
	env := newTestEnv(t)
	err := env.ledger.Increment(context.Background(), 999, model.CounterViewCount, 1)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestCounterLedger_SaturatesAndMarksDirty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	v := repotest.SeedVideo(t, env.db, 1, repotest.WithCounts(0, 0, 1, 0))

	require.NoError(t, env.ledger.Decrement(ctx, v.ID, model.CounterCommentCount, 1))
	require.NoError(t, env.ledger.Decrement(ctx, v.ID, model.CounterCommentCount, 1))
	require.NoError(t, env.ledger.Increment(ctx, v.ID, model.CounterViewCount, 2))

	got := env.reload(t, v.ID)
	assert.EqualValues(t, 0, got.CommentCount)
	assert.EqualValues(t, 2, got.ViewCount)

	members, err := env.mr.Members(consts.VideoDirtyKey)
	require.NoError(t, err)
	assert.Equal(t, []string{strconv.FormatUint(v.ID, 10)}, members)
}
