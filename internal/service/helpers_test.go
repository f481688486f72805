package service

import (
	"Showcase/internal/api/config"
	"Showcase/internal/model"
	"Showcase/internal/pkg/mongo"
	"Showcase/internal/pkg/redis"
	"Showcase/internal/repository"
	"Showcase/internal/repository/repotest"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	mr         *miniredis.Miniredis
	tx         repository.Transactor
	videos     repository.VideoRepo
	actions    repository.ActionRepo
	feeds      repository.FeedRepo
	businesses repository.BusinessRepo
	favorites  repository.FavoriteRepo
	ledger     CounterLedger
	inbox      *fakeNotificationRepo
	notifier   NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := repotest.NewDB(t)
	mr := miniredis.RunT(t)
	redis.Rdb = redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		redis.Rdb = nil
	})
	inbox := &fakeNotificationRepo{}
	return &testEnv{
		db:         db,
		mr:         mr,
		tx:         repository.NewTransactor(db),
		videos:     repository.NewVideoRepo(db),
		actions:    repository.NewActionRepo(db),
		feeds:      repository.NewFeedRepo(db),
		businesses: repository.NewBusinessRepo(db),
		favorites:  repository.NewFavoriteRepo(db),
		ledger:     NewCounterLedger(repository.NewCounterRepo(db)),
		inbox:      inbox,
		notifier:   NewNotificationService(inbox),
	}
}

func (e *testEnv) reload(t *testing.T, id uint64) *model.Video {
	t.Helper()
	var v model.Video
	if err := e.db.First(&v, id).Error; err != nil {
		t.Fatalf("reload video %d: %v", id, err)
	}
	return &v
}

func testWorkerConfig() config.WorkerConfig {
	return config.WorkerConfig{Driver: "kafka", MaxAttempts: 3, AttemptTimeout: 2 * time.Hour}
}

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{DefaultLimit: 20, MaxLimit: 50}
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*model.TranscodeTask
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, task *model.TranscodeTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

type fakeIndex struct {
	mu        sync.Mutex
	indexed   map[uint64]*model.Video
	deleted   []uint64
	searchIDs []uint64
	searchErr error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[uint64]*model.Video{}}
}

func (f *fakeIndex) IndexVideo(_ context.Context, v *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[v.ID] = v
	return nil
}

func (f *fakeIndex) DeleteVideo(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.indexed, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) SearchVideoIDs(_ context.Context, _ string, _ int) ([]uint64, error) {
	return f.searchIDs, f.searchErr
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	msgs []*mongo.NotificationModel
	err  error
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, msg *mongo.NotificationModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	msg.ID = primitive.NewObjectID()
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationList(_ context.Context, userID uint64, limit, offset int64) ([]*mongo.NotificationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*mongo.NotificationModel
	for i := len(f.msgs) - 1; i >= 0; i-- {
		if f.msgs[i].ReceiverID == userID {
			out = append(out, f.msgs[i])
		}
	}
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, userID uint64, msgID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.msgs {
		if m.ID.Hex() == msgID && m.ReceiverID == userID {
			m.IsRead = true
			return nil
		}
	}
	return mongoDB.ErrNoDocuments
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.msgs {
		if m.ReceiverID == userID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.msgs {
		if m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) kinds(receiver uint64) []mongo.NotificationKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []mongo.NotificationKind
	for _, m := range f.msgs {
		if m.ReceiverID == receiver {
			out = append(out, m.Kind)
		}
	}
	return out
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (f *fakeStorage) Put(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[name] = b
	return "https://cdn.example.com/" + name, nil
}

var errBoom = errors.New("boom")
