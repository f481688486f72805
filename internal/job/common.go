package job

import (
	"Showcase/internal/pkg/logger"
	"Showcase/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// jobContext 每次执行生成独立的 trace_id
func jobContext(name string) context.Context {
	return logger.WithTraceID(context.Background(), "job-"+name+"-"+uuid.NewString())
}

// withLock 多实例部署时只让一个实例执行；未配置 Redis 时直接执行
func withLock(ctx context.Context, key string, ttl time.Duration, fn func()) {
	if redis.Rdb == nil {
		fn()
		return
	}
	token := uuid.NewString()
	ok, err := redis.TryLock(ctx, key, token, ttl, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire job lock error", "key", key, "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "job lock held by another instance, skip", "key", key)
		return
	}
	defer redis.UnLock(ctx, key, token)
	fn()
}
