package consumer

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"wallet-reputation/internal/worker/config"
)

const DEFAULT_WRITE_TIMEOUT = 5 * time.Second

// MessageReader kafka.Reader 的最小子集, 手动提交 offset
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaReader 创建 Kafka Reader, CommitInterval 为 0 表示同步提交
func NewKafkaReader(conf config.KafkaConfig) *kafka.Reader {
	startOffset := kafka.FirstOffset
	if conf.AutoOffsetReset == config.OFFSET_RESET_LATEST {
		startOffset = kafka.LastOffset
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:                splitBrokers(conf.Brokers),
		Topic:                  conf.TopicInput,
		GroupID:                conf.GroupID,
		StartOffset:            startOffset,
		CommitInterval:         0,
		QueueCapacity:          100,
		MinBytes:               1,
		MaxBytes:               10e6,                   // 最大读取字节数(10MB)
		ReadBatchTimeout:       500 * time.Millisecond, // 读取超时
		PartitionWatchInterval: 5 * time.Second,        // 分区监控间隔
	})
}

// NewKafkaWriter 同步单条写入, 保证出站顺序与入站一致
func NewKafkaWriter(conf config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(splitBrokers(conf.Brokers)...),
		Topic:        conf.TopicOutput,
		Balancer:     &kafka.Hash{},
		BatchSize:    1,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		WriteTimeout: WriteTimeout(conf),
	}
}

func WriteTimeout(conf config.KafkaConfig) time.Duration {
	if conf.WriteTimeoutMs <= 0 {
		return DEFAULT_WRITE_TIMEOUT
	}
	return time.Duration(conf.WriteTimeoutMs) * time.Millisecond
}

func splitBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
