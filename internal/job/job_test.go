package job

import (
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/redis"
	"Showcase/internal/service"
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVideoService struct {
	service.VideoService
	mu       sync.Mutex
	synced   [][]uint64
	syncErr  error
	staleAt  []time.Time
	staleErr error
}

func (s *stubVideoService) SyncIndex(_ context.Context, ids []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced = append(s.synced, ids)
	return s.syncErr
}

func (s *stubVideoService) FailStaleProcessing(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staleAt = append(s.staleAt, now)
	return 1, s.staleErr
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Rdb = redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		redis.Rdb = nil
	})
	return mr
}

func TestCounterSyncJob_DrainsDirtySet(t *testing.T) {
	mr := setupRedis(t)
	for i := 1; i <= 5; i++ {
		_, err := mr.SAdd(consts.VideoDirtyKey, strconv.Itoa(i))
		require.NoError(t, err)
	}
	svc := &stubVideoService{}

	NewCounterSyncJob(svc).Run()

	var all []uint64
	for _, batch := range svc.synced {
		all = append(all, batch...)
	}
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4, 5}, all)
	assert.False(t, mr.Exists(consts.VideoDirtyKey))
	assert.False(t, mr.Exists(consts.CounterSyncLock))
}

func TestCounterSyncJob_RequeuesOnFailure(t *testing.T) {
	mr := setupRedis(t)
	_, err := mr.SAdd(consts.VideoDirtyKey, "7", "8")
	require.NoError(t, err)
	svc := &stubVideoService{syncErr: errors.New("es down")}

	NewCounterSyncJob(svc).Run()

	members, err := mr.Members(consts.VideoDirtyKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"7", "8"}, members)
	assert.Len(t, svc.synced, 1)
}

func TestCounterSyncJob_SkipsWhenLocked(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(consts.CounterSyncLock, "other"))
	_, err := mr.SAdd(consts.VideoDirtyKey, "1")
	require.NoError(t, err)
	svc := &stubVideoService{}

	NewCounterSyncJob(svc).Run()
	assert.Empty(t, svc.synced)
	assert.True(t, mr.Exists(consts.VideoDirtyKey))
}

func TestStaleProcessingJob_Run(t *testing.T) {
	setupRedis(t)
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := &stubVideoService{}
	j := NewStaleProcessingJob(svc)
	j.now = func() time.Time { return at }

	j.Run()
	require.Len(t, svc.staleAt, 1)
	assert.Equal(t, at, svc.staleAt[0])
}

func TestStaleProcessingJob_RunsWithoutRedis(t *testing.T) {
	svc := &stubVideoService{}
	NewStaleProcessingJob(svc).Run()
	assert.Len(t, svc.staleAt, 1)
}
