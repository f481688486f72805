package job

import (
	"Showcase/internal/pkg/consts"
	"Showcase/internal/service"
	log "log/slog"
	"time"
)

// StaleProcessingJob 把超出重试预算仍在 processing 的视频置为 failed
type StaleProcessingJob struct {
	videoSvc service.VideoService
	now      func() time.Time
}

func NewStaleProcessingJob(videoSvc service.VideoService) *StaleProcessingJob {
	return &StaleProcessingJob{videoSvc: videoSvc, now: time.Now}
}

func (s *StaleProcessingJob) Run() {
	ctx := jobContext("stale")
	withLock(ctx, consts.StaleSweepLock, 5*time.Minute, func() {
		n, err := s.videoSvc.FailStaleProcessing(ctx, s.now())
		if err != nil {
			log.ErrorContext(ctx, "fail stale processing videos error", "moved", n, "err", err)
			return
		}
		if n > 0 {
			log.InfoContext(ctx, "stale processing videos marked failed", "count", n)
		}
	})
}
