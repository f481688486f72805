package logger

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

// NewMongoMonitor 命令级监控，命令内容只在慢命令和失败时输出
func NewMongoMonitor() *event.CommandMonitor {
	var pending sync.Map // request_id -> 截断后的命令

	finish := func(requestID int64) string {
		v, ok := pending.LoadAndDelete(requestID)
		if !ok {
			return ""
		}
		return v.(string)
	}

	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			pending.Store(evt.RequestID, truncate(evt.Command.String()))
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			detail := finish(evt.RequestID)
			if evt.Duration <= slow.Mongo {
				log.DebugContext(ctx, "MongoDB Success", "command", evt.CommandName, "latency", evt.Duration)
				return
			}
			log.WarnContext(ctx, "MongoDB Slow", mongoFields(evt.CommandName, evt.Duration, detail)...)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			detail := finish(evt.RequestID)
			log.ErrorContext(ctx, "MongoDB Error", append(mongoFields(evt.CommandName, evt.Duration, detail), "err", evt.Failure)...)
		},
	}
}

func mongoFields(command string, latency time.Duration, detail string) []any {
	return []any{"command", command, "latency", latency, "cmd_detail", detail}
}
