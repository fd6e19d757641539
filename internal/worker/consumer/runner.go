package consumer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wallet-reputation/internal/worker/cache"
	"wallet-reputation/internal/worker/config"
	"wallet-reputation/internal/worker/model"
	"wallet-reputation/internal/worker/monitor"
	"wallet-reputation/internal/worker/scoring"
	"wallet-reputation/internal/worker/stats"
	"wallet-reputation/internal/worker/writer"
	"wallet-reputation/pkg/logger"
)

const TRACER_NAME = "consumer"

// Runner 单协程 消费 -> 打分 -> 生产 -> 提交, 一条入站消息对应一条出站消息
type Runner struct {
	id           string
	tl           *zap.Logger
	reader       MessageReader
	writer       writer.Writer[*model.ScoreEvent]
	pipeline     *scoring.Pipeline
	counters     *stats.Counters
	results      *cache.ResultCache // 可以为空
	limiter      *rate.Limiter      // 可以为空
	inputTopic   string
	outputTopic  string
	writeTimeout time.Duration
}

func NewRunner(
	conf config.Config,
	tl *zap.Logger,
	reader MessageReader,
	w writer.Writer[*model.ScoreEvent],
	pipeline *scoring.Pipeline,
	counters *stats.Counters,
	results *cache.ResultCache,
) *Runner {
	var limiter *rate.Limiter
	if conf.Worker.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(conf.Worker.RateLimit), conf.Worker.RateLimit)
	}

	return &Runner{
		id:           "wallet_score_runner",
		tl:           tl,
		reader:       reader,
		writer:       w,
		pipeline:     pipeline,
		counters:     counters,
		results:      results,
		limiter:      limiter,
		inputTopic:   conf.Kafka.TopicInput,
		outputTopic:  conf.Kafka.TopicOutput,
		writeTimeout: WriteTimeout(conf.Kafka),
	}
}

func (r *Runner) ID() string {
	return r.id
}

// Run 阻塞直到 ctx 取消(返回 nil) 或传输层出错(返回 error)
func (r *Runner) Run(ctx context.Context) error {
	r.tl.Info("🚀 Runner started", zap.String("id", r.id), zap.String("input", r.inputTopic), zap.String("output", r.outputTopic))

	for {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return r.stopped()
				}
				return errors.Wrap(err, "rate limiter")
			}
		}

		msg, err := r.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return r.stopped()
			}
			r.tl.Error("❌ Kafka Read Error", zap.String("id", r.id), zap.Error(err))
			return errors.Wrap(err, "fetch message")
		}

		if err := r.handle(ctx, msg); err != nil {
			return err
		}
	}
}

func (r *Runner) stopped() error {
	r.tl.Warn("closing Kafka runner...", zap.String("id", r.id), zap.Any("stats", r.counters.Snapshot()))
	return nil
}

// handle 处理单条消息, 打分失败同样生产失败结果, 只有传输错误才返回 error
func (r *Runner) handle(ctx context.Context, msg kafka.Message) error {
	startTime := time.Now()
	r.counters.IncConsumed()
	monitor.KafkaMessagesReceived.WithLabelValues(r.inputTopic).Inc()

	spanCtx, span := logger.StartSpan(ctx, TRACER_NAME, "score_wallet",
		attribute.String("kafka.topic", msg.Topic),
		attribute.Int("kafka.partition", msg.Partition),
		attribute.Int64("kafka.offset", msg.Offset),
	)
	defer span.End()
	tl := logger.WithTrace(spanCtx, r.tl)

	out := r.pipeline.Score(msg.Value)
	monitor.WalletTransactionCount.Observe(float64(len(out.Rows)))
	event := scoring.BuildEvent(out, r.pipeline.Now())

	err := r.write(spanCtx, event)
	var encErr *writer.EncodeError
	if errors.As(err, &encErr) {
		// 结果本身无法序列化, 按单个钱包失败处理, 不影响后续消息
		tl.Warn("⚠️ Score event not encodable, producing failure instead", zap.String("wallet", event.WalletAddress), zap.Error(err))
		elapsed := out.Elapsed
		out = scoring.ExceptionOutcome(out.WalletAddress, encErr)
		out.Elapsed = elapsed
		event = scoring.BuildEvent(out, r.pipeline.Now())
		err = r.write(spanCtx, event)
	}

	r.countOutcome(tl, out)
	span.SetAttributes(attribute.String("wallet", out.WalletAddress), attribute.Bool("scored", out.OK()))
	if r.results != nil {
		r.results.Put(event)
	}

	if err != nil {
		span.RecordError(err)
		tl.Error("❌ Produce score event failed", zap.String("wallet", event.WalletAddress), zap.Error(err))
		return errors.Wrap(err, "produce score event")
	}
	r.counters.IncProduced()
	monitor.KafkaMessagesProduced.WithLabelValues(r.outputTopic).Inc()

	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(spanCtx), r.writeTimeout)
	err = r.reader.CommitMessages(commitCtx, msg)
	cancel()
	if err != nil {
		span.RecordError(err)
		tl.Error("❌ Commit offset failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return errors.Wrap(err, "commit message")
	}

	monitor.WalletProcessDuration.Observe(time.Since(startTime).Seconds())
	tl.Debug("✅ Process wallet",
		zap.String("wallet", event.WalletAddress),
		zap.Bool("success", event.IsSuccess()),
		zap.Int64("processing_time_ms", event.ProcessingTimeMs),
	)
	return nil
}

// write 关闭过程中正在写的消息也要写完
func (r *Runner) write(ctx context.Context, event *model.ScoreEvent) error {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancel()
	return r.writer.Write(writeCtx, event)
}

func (r *Runner) countOutcome(tl *zap.Logger, out scoring.Outcome) {
	if out.OK() {
		r.counters.IncScored()
		monitor.WalletScoreOutcomes.WithLabelValues(monitor.OUTCOME_SCORED).Inc()
		monitor.WalletFinalScore.Observe(out.Scored.FinalScore)
		return
	}
	r.counters.IncFailed()
	monitor.WalletScoreOutcomes.WithLabelValues(monitor.OUTCOME_FAILED).Inc()
	tl.Warn("⚠️ Wallet scoring failed", zap.String("wallet", out.WalletAddress), zap.Error(out.Failure.Err))
}
