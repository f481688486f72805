package kafka

import (
	"Showcase/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
	maxBackoff   = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 攒够 batchSize 条或等满 batchTimeout 后处理一批
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	ctx := session.Context()
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		processBatch(ctx, session, batch, logic)
		batch = batch[:0]
	}

	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			return nil
		}
	}
}

// marker 只需要提交位点的能力，测试时可替换
type marker interface {
	MarkMessage(msg *sarama.ConsumerMessage, metadata string)
}

// processBatch 并发处理一批消息，失败的消息退避重试直到成功或会话结束，会话结束时不提交位点
func processBatch(ctx context.Context, session marker, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			msgCtx := logger.WithTraceID(ctx, uuid.NewString())
			retryInterval := 100 * time.Millisecond

			for attempt := 1; ; attempt++ {
				err := logic(msgCtx, m)
				if err == nil {
					return
				}
				log.WarnContext(msgCtx, "process message error",
					"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "attempt", attempt, "err", err)

				select {
				case <-ctx.Done():
					return
				case <-time.After(retryInterval):
				}
				retryInterval *= 2
				if retryInterval > maxBackoff {
					retryInterval = maxBackoff
				}
			}
		}(msg)
	}

	wg.Wait()

	if len(messages) > 0 && ctx.Err() == nil {
		session.MarkMessage(messages[len(messages)-1], "")
	}
}
