package worker

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPQueue 直接把转码任务 POST 给 Worker，worker.driver=http 时使用
type HTTPQueue struct {
	client   *resty.Client
	endpoint string
}

func NewHTTPQueue(endpoint, token string) *HTTPQueue {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader(consts.WorkerTokenHeader, token)
	return &HTTPQueue{client: client, endpoint: endpoint}
}

func (s *HTTPQueue) Enqueue(ctx context.Context, task *model.TranscodeTask) error {
	req := s.client.R().SetContext(ctx).SetBody(task)
	if traceID := logger.TraceID(ctx); traceID != "" {
		req.SetHeader(consts.TraceIDHeader, traceID)
	}
	resp, err := req.Post(s.endpoint)
	if err != nil {
		return fmt.Errorf("dispatch transcode task: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("dispatch transcode task: worker responded %d", resp.StatusCode())
	}
	log.InfoContext(ctx, "transcode task dispatched", "video_id", task.VideoID, "status", resp.StatusCode())
	return nil
}
