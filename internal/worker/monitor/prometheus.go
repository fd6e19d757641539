package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	// KafkaMessagesReceived Kafka 消费相关
	KafkaMessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_received_total",
			Help: "Total number of messages received from Kafka.",
		},
		[]string{"topic"},
	)
	KafkaMessagesProduced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_produced_total",
			Help: "Total number of score events produced to Kafka.",
		},
		[]string{"topic"},
	)
	KafkaWriteAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_write_attempts_total",
			Help: "Number of write attempts to Kafka, labelled by result.",
		},
		[]string{"result"},
	)

	// WalletScoreOutcomes 打分结果
	WalletScoreOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_score_outcomes_total",
			Help: "Number of wallets processed, labelled by outcome.",
		},
		[]string{"outcome"},
	)
	WalletProcessDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wallet_process_duration_seconds",
			Help:    "Time taken to score one wallet, including produce.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
	)
	WalletFinalScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wallet_final_score",
			Help:    "Distribution of final reputation scores.",
			Buckets: prometheus.LinearBuckets(0, 100, 10),
		},
	)
	WalletTransactionCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wallet_transaction_count",
			Help:    "Number of normalized DEX transactions per wallet.",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
	)
)

const (
	OUTCOME_SCORED = "scored"
	OUTCOME_FAILED = "failed"
)

func init() {
	prometheus.MustRegister(
		// kafka指标
		KafkaMessagesReceived,
		KafkaMessagesProduced,
		KafkaWriteAttempts,

		// 打分指标
		WalletScoreOutcomes,
		WalletProcessDuration,
		WalletFinalScore,
		WalletTransactionCount,
	)
}
