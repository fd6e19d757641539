package consumer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wallet-reputation/internal/worker/config"
)

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, splitBrokers(""))
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter(config.KafkaConfig{Brokers: "localhost:9092", TopicOutput: "wallet-scores", WriteTimeoutMs: 250})
	defer func() { _ = w.Close() }()

	assert.Equal(t, "wallet-scores", w.Topic)
	assert.Equal(t, 1, w.BatchSize)
	assert.False(t, w.Async)
	assert.Equal(t, 250*time.Millisecond, w.WriteTimeout)
}
