package job

import (
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/redis"
	"Showcase/internal/service"
	log "log/slog"
	"time"
)

// CounterSyncJob 把计数变化过的视频刷新到搜索索引
type CounterSyncJob struct {
	videoSvc service.VideoService
}

func NewCounterSyncJob(videoSvc service.VideoService) *CounterSyncJob {
	return &CounterSyncJob{videoSvc: videoSvc}
}

func (s *CounterSyncJob) Run() {
	if redis.Rdb == nil {
		return
	}
	ctx := jobContext("counter")
	withLock(ctx, consts.CounterSyncLock, 5*time.Minute, func() {
		total := 0
		for {
			ids, err := redis.PopDirty(ctx, consts.VideoDirtyKey, consts.CounterSyncBatch)
			if err != nil {
				log.ErrorContext(ctx, "pop dirty videos error", "err", err)
				return
			}
			if len(ids) == 0 {
				break
			}
			if err = s.videoSvc.SyncIndex(ctx, ids); err != nil {
				log.ErrorContext(ctx, "sync video index error", "count", len(ids), "err", err)
				// 放回脏集合等下一轮
				for _, id := range ids {
					if mErr := redis.MarkDirty(ctx, consts.VideoDirtyKey, id); mErr != nil {
						log.WarnContext(ctx, "re-mark dirty video failed", "video_id", id, "err", mErr)
					}
				}
				return
			}
			total += len(ids)
		}
		if total > 0 {
			log.InfoContext(ctx, "sync video counters success", "video_count", total)
		}
	})
}
