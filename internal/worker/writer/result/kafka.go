package result

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/model"
	"wallet-reputation/internal/worker/monitor"
	"wallet-reputation/internal/worker/writer"
)

const RETRY_COUNT = 3

// MessageWriter kafka.Writer 的最小子集
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaScoreWriter struct {
	mq MessageWriter
	tl *zap.Logger

	topic string
}

// NewKafkaScoreWriter topic 为空时使用 mq 自身配置的 topic
func NewKafkaScoreWriter(mq MessageWriter, tl *zap.Logger, topic string) writer.Writer[*model.ScoreEvent] {
	return &KafkaScoreWriter{mq: mq, tl: tl, topic: topic}
}

func (w *KafkaScoreWriter) Write(ctx context.Context, event *model.ScoreEvent) error {
	if event == nil {
		return nil
	}

	msg, err := w.marshalToMsg(event)
	if err != nil {
		return err
	}

	// 重试机制
	for attempt := 0; attempt < RETRY_COUNT; attempt++ {
		err = w.mq.WriteMessages(ctx, msg)
		if err == nil {
			monitor.KafkaWriteAttempts.WithLabelValues("success").Inc()
			return nil
		}
		monitor.KafkaWriteAttempts.WithLabelValues("error").Inc()
		if ctx.Err() != nil {
			break
		}
		w.tl.Warn("⚠️ MQ write failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	w.tl.Warn("❌ MQ write failed, exceeded the maximum number of retries",
		zap.String("wallet", event.WalletAddress), zap.Error(err))
	return errors.Wrapf(err, "write score event for %s", event.WalletAddress)
}

func (w *KafkaScoreWriter) Close() error {
	return w.mq.Close()
}

func (w *KafkaScoreWriter) marshalToMsg(event *model.ScoreEvent) (kafka.Message, error) {
	jsonData, err := sonic.Marshal(event)
	if err != nil {
		return kafka.Message{}, &writer.EncodeError{Err: err}
	}
	return kafka.Message{
		Topic: w.topic,
		Key:   []byte(event.WalletAddress),
		Value: jsonData,
	}, nil
}
