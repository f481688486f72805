package redis

import (
	"Showcase/internal/api/config"
	"Showcase/internal/pkg/logger"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// Rdb 计数脏集合、热门缓存和任务锁共用的客户端
var Rdb *redis.Client

// InitRedis 连接失败时不会覆盖已有的 Rdb
func InitRedis(ctx context.Context, cfg config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisLogger())

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return err
	}

	Rdb = rdb
	return nil
}

// Close 关闭全局客户端
func Close() error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Close()
}
