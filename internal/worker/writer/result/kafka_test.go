package result

import (
	"context"
	"math"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/model"
	"wallet-reputation/internal/worker/writer"
)

type fakeMQ struct {
	failures int
	calls    int
	msgs     []kafka.Message
	closed   bool
}

func (f *fakeMQ) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("broker unavailable")
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeMQ) Close() error {
	f.closed = true
	return nil
}

func TestKafkaScoreWriterWrite(t *testing.T) {
	mq := &fakeMQ{}
	w := NewKafkaScoreWriter(mq, zap.NewNop(), "")

	zscore := "65.000000000000000000"
	require.NoError(t, w.Write(context.Background(), &model.ScoreEvent{
		WalletAddress: "0xabc",
		ZScore:        &zscore,
		Timestamp:     1703980800,
		Categories:    []model.CategoryResult{{Category: model.CATEGORY_DEXES}},
	}))
	require.Len(t, mq.msgs, 1)
	assert.Equal(t, "0xabc", string(mq.msgs[0].Key))

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(mq.msgs[0].Value, &decoded))
	assert.Equal(t, zscore, decoded["zscore"])
	assert.NotContains(t, decoded, "error")

	require.NoError(t, w.Close())
	assert.True(t, mq.closed)
}

func TestKafkaScoreWriterRetries(t *testing.T) {
	mq := &fakeMQ{failures: RETRY_COUNT - 1}
	w := NewKafkaScoreWriter(mq, zap.NewNop(), "wallet-scores")

	require.NoError(t, w.Write(context.Background(), &model.ScoreEvent{WalletAddress: "0xabc"}))
	assert.Equal(t, RETRY_COUNT, mq.calls)
	assert.Equal(t, "wallet-scores", mq.msgs[0].Topic)
}

func TestKafkaScoreWriterGivesUp(t *testing.T) {
	mq := &fakeMQ{failures: RETRY_COUNT}
	w := NewKafkaScoreWriter(mq, zap.NewNop(), "")

	err := w.Write(context.Background(), &model.ScoreEvent{WalletAddress: "0xabc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
	assert.Empty(t, mq.msgs)
}

func TestKafkaScoreWriterEncodeError(t *testing.T) {
	mq := &fakeMQ{}
	w := NewKafkaScoreWriter(mq, zap.NewNop(), "")

	inf := math.Inf(1)
	err := w.Write(context.Background(), &model.ScoreEvent{
		WalletAddress: "0xabc",
		Categories:    []model.CategoryResult{{Category: model.CATEGORY_DEXES, Score: &inf}},
	})
	require.Error(t, err)

	var encErr *writer.EncodeError
	assert.True(t, errors.As(err, &encErr))
	assert.Zero(t, mq.calls)
}
