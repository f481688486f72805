package kafka

import (
	"Showcase/internal/api/config"
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// TranscodeProducer 把转码任务写入 Kafka，key 为 public_id 保证同一视频落在同一分区
type TranscodeProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewTranscodeProducer(cfg config.KafkaConfig) (*TranscodeProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}
	return NewTranscodeProducerWith(producer, cfg.TranscodeTopic), nil
}

func NewTranscodeProducerWith(producer sarama.SyncProducer, topic string) *TranscodeProducer {
	return &TranscodeProducer{producer: producer, topic: topic}
}

func (s *TranscodeProducer) Enqueue(ctx context.Context, task *model.TranscodeTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "marshal transcode task")
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(task.PublicID),
		Value: sarama.ByteEncoder(body),
	}
	if traceID := logger.TraceID(ctx); traceID != "" {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(consts.TraceIDHeader),
			Value: []byte(traceID),
		})
	}
	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "send transcode task %s", task.PublicID)
	}
	log.InfoContext(ctx, "transcode task enqueued",
		"video_id", task.VideoID, "partition", partition, "offset", offset)
	return nil
}

func (s *TranscodeProducer) Close() error {
	return s.producer.Close()
}
