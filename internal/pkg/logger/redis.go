package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// 参数里带凭证的命令
var protectedCommands = map[string]struct{}{
	"auth":  {},
	"hello": {},
}

type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error", "addr", addr, "latency", time.Since(start), "err", err)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		switch {
		case err != nil && !ignorableRedisErr(cmd.Name(), err):
			log.ErrorContext(ctx, "Redis Error", append(commandFields(cmd, elapsed), "err", err)...)
		case err == nil && elapsed > slow.Redis:
			log.WarnContext(ctx, "Redis Slow", commandFields(cmd, elapsed)...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)

		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			names = append(names, cmd.Name())
		}
		fields := []any{"commands", strings.Join(names, ","), "latency", elapsed}

		switch {
		case err != nil && !errors.Is(err, redis.Nil):
			log.ErrorContext(ctx, "Redis Pipeline Error", append(fields, "err", err)...)
		case elapsed > slow.Redis:
			log.WarnContext(ctx, "Redis Pipeline Slow", fields...)
		}
		return err
	}
}

func commandFields(cmd redis.Cmder, elapsed time.Duration) []any {
	args := "[PROTECTED]"
	if _, ok := protectedCommands[cmd.Name()]; !ok {
		args = truncate(fmt.Sprint(cmd.Args()))
	}
	return []any{"command", cmd.Name(), "args", args, "latency", elapsed}
}

// ignorableRedisErr 未命中和握手阶段的 client setinfo 报错不记录
func ignorableRedisErr(name string, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	return name == "client" && strings.Contains(err.Error(), "setinfo")
}
