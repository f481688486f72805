package kafka

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/logger"
	"Showcase/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// TranscodeResultHandler 消费 Worker 回写的转码结果
type TranscodeResultHandler struct {
	videoService service.VideoService
}

func NewTranscodeResultHandler(videoService service.VideoService) *TranscodeResultHandler {
	return &TranscodeResultHandler{videoService: videoService}
}

func (s *TranscodeResultHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("transcode result consumer setup")
	return nil
}

func (s *TranscodeResultHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("transcode result consumer cleanup")
	return nil
}

func (s *TranscodeResultHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("transcode result process batch error", "err", err)
		return err
	}
	return nil
}

// logic 无法解析或指向不存在视频的消息直接丢弃，其余错误交给重试
func (s *TranscodeResultHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	for _, h := range msg.Headers {
		if h != nil && string(h.Key) == consts.TraceIDHeader && len(h.Value) > 0 {
			ctx = logger.WithTraceID(ctx, string(h.Value))
		}
	}

	var res model.ProcessingResult
	if err := json.Unmarshal(msg.Value, &res); err != nil {
		log.ErrorContext(ctx, "unmarshal transcode result error", "offset", msg.Offset, "err", err)
		return nil
	}

	err := s.videoService.HandleProcessingResult(ctx, &res)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrParamInvalid), errors.Is(err, service.ErrVideoNotFound):
		log.WarnContext(ctx, "discard transcode result", "video_id", res.VideoID, "public_id", res.PublicID, "err", err)
		return nil
	default:
		return errors.Wrapf(err, "handle transcode result for video %d", res.VideoID)
	}
}
