package kafka

import (
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/logger"
	"Showcase/internal/service"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVideoService struct {
	service.VideoService
	mu   sync.Mutex
	got  []*model.ProcessingResult
	err  error
	ctxs []context.Context
}

func (s *stubVideoService) HandleProcessingResult(ctx context.Context, res *model.ProcessingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, res)
	s.ctxs = append(s.ctxs, ctx)
	return s.err
}

func TestTranscodeProducer_Enqueue(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var task model.TranscodeTask
		if err := json.Unmarshal(val, &task); err != nil {
			return err
		}
		if task.PublicID != "pub-1" || task.MaxAttempts != 3 {
			return errors.New("unexpected task payload")
		}
		return nil
	})
	p := NewTranscodeProducerWith(mp, "video-transcode")

	ctx := logger.WithTraceID(context.Background(), "trace-1")
	err := p.Enqueue(ctx, &model.TranscodeTask{VideoID: 1, PublicID: "pub-1", MaxAttempts: 3})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestTranscodeProducer_SendFailure(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	p := NewTranscodeProducerWith(mp, "video-transcode")

	err := p.Enqueue(context.Background(), &model.TranscodeTask{VideoID: 1, PublicID: "pub-1"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func resultMessage(t *testing.T, res model.ProcessingResult) *sarama.ConsumerMessage {
	t.Helper()
	b, err := json.Marshal(res)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic: "video-transcode-result",
		Value: b,
		Headers: []*sarama.RecordHeader{
			{Key: []byte(consts.TraceIDHeader), Value: []byte("worker-trace")},
		},
	}
}

func TestTranscodeResultHandler_Logic(t *testing.T) {
	svc := &stubVideoService{}
	h := NewTranscodeResultHandler(svc)

	msg := resultMessage(t, model.ProcessingResult{VideoID: 9, Outcome: model.OutcomeSuccess,
		Media: &model.MediaMeta{VideoURL: "https://cdn/v.mp4"}})
	require.NoError(t, h.logic(context.Background(), msg))
	require.Len(t, svc.got, 1)
	assert.EqualValues(t, 9, svc.got[0].VideoID)
	assert.Equal(t, "https://cdn/v.mp4", svc.got[0].Media.VideoURL)
	assert.Equal(t, "worker-trace", logger.TraceID(svc.ctxs[0]))

	// 坏消息不重试
	assert.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte("{")}))
	svc.err = service.ErrVideoNotFound
	assert.NoError(t, h.logic(context.Background(), msg))

	svc.err = errors.New("db down")
	assert.Error(t, h.logic(context.Background(), msg))
}

type recordingMarker struct {
	mu     sync.Mutex
	marked []*sarama.ConsumerMessage
}

func (m *recordingMarker) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked = append(m.marked, msg)
}

func TestProcessBatch_RetriesThenMarksLast(t *testing.T) {
	msgs := []*sarama.ConsumerMessage{{Offset: 1}, {Offset: 2}}
	var calls atomic.Int32
	logic := func(_ context.Context, m *sarama.ConsumerMessage) error {
		n := calls.Add(1)
		if m.Offset == 1 && n < 3 {
			return errors.New("transient")
		}
		return nil
	}

	mk := &recordingMarker{}
	processBatch(context.Background(), mk, msgs, logic)
	require.Len(t, mk.marked, 1)
	assert.EqualValues(t, 2, mk.marked[0].Offset)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestProcessBatch_KeepsRetryingThroughOutage(t *testing.T) {
	var calls atomic.Int32
	logic := func(context.Context, *sarama.ConsumerMessage) error {
		if calls.Add(1) <= 5 {
			return errors.New("db down")
		}
		return nil
	}

	mk := &recordingMarker{}
	processBatch(context.Background(), mk, []*sarama.ConsumerMessage{{Offset: 7}}, logic)
	assert.EqualValues(t, 6, calls.Load())
	require.Len(t, mk.marked, 1)
	assert.EqualValues(t, 7, mk.marked[0].Offset)
}

func TestProcessBatch_CancelDuringRetryDoesNotMark(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	mk := &recordingMarker{}
	start := time.Now()
	processBatch(ctx, mk, []*sarama.ConsumerMessage{{Offset: 3}}, func(context.Context, *sarama.ConsumerMessage) error {
		return errors.New("always")
	})
	assert.Empty(t, mk.marked)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestProcessBatch_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mk := &recordingMarker{}
	processBatch(ctx, mk, []*sarama.ConsumerMessage{{Offset: 1}}, func(context.Context, *sarama.ConsumerMessage) error {
		return errors.New("fail")
	})
	assert.Empty(t, mk.marked)
}
