package kafka

import (
	"Showcase/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	resultTopic    string
	resultConsumer sarama.ConsumerGroup
	resultHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg config.KafkaConfig, resultHandler *TranscodeResultHandler) (*ConsumerManager, error) {
	consumer, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.TranscodeResultGroup, newSaramaConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "create transcode result consumer group")
	}
	return &ConsumerManager{
		resultTopic:    cfg.TranscodeResultTopic,
		resultConsumer: consumer,
		resultHandler:  resultHandler,
	}, nil
}

// Start 阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.resultConsumer.Errors() {
			log.Error("transcode result consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("Transcode result consumer started", "topic", m.resultTopic)
		for {
			if err := m.resultConsumer.Consume(ctx, []string{m.resultTopic}, m.resultHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")
	if err := m.resultConsumer.Close(); err != nil {
		log.Error("Failed to close transcode result consumer", "err", err)
	}
	return nil
}
