package worker

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/cache"
	"wallet-reputation/internal/worker/config"
	"wallet-reputation/internal/worker/consumer"
	"wallet-reputation/internal/worker/job"
	"wallet-reputation/internal/worker/model"
	"wallet-reputation/internal/worker/monitor"
	"wallet-reputation/internal/worker/scoring"
	"wallet-reputation/internal/worker/server"
	"wallet-reputation/internal/worker/stats"
	"wallet-reputation/internal/worker/writer"
	"wallet-reputation/internal/worker/writer/result"
)

type Core struct {
	cfg       config.Config
	tl        *zap.Logger
	counters  *stats.Counters
	results   *cache.ResultCache
	reader    consumer.MessageReader
	writer    writer.Writer[*model.ScoreEvent]
	runner    *consumer.Runner
	scheduler *job.Scheduler
	status    *server.StatusServer
	metrics   *monitor.MetricsServer

	stopOnce sync.Once
}

// New 使用真实的 Kafka reader/writer 组装 Core
func New(cfg config.Config, logger *zap.Logger) *Core {
	return NewWithTransport(cfg, logger,
		consumer.NewKafkaReader(cfg.Kafka),
		result.NewKafkaScoreWriter(consumer.NewKafkaWriter(cfg.Kafka), logger, ""),
	)
}

func NewWithTransport(cfg config.Config, logger *zap.Logger, reader consumer.MessageReader, w writer.Writer[*model.ScoreEvent]) *Core {
	counters := stats.New()
	results := cache.NewResultCache(logger, time.Duration(cfg.Worker.ResultCacheTTL)*time.Second)
	pipeline := scoring.NewPipeline(logger)

	// 注册定时任务 - 周期输出计数器
	scheduler := job.NewScheduler(logger)
	statsReport := job.NewStatsReport(counters, logger)
	scheduler.RegisterJob(job.STATS_REPORT_JOB, time.Duration(cfg.Worker.StatsReportInterval)*time.Second, statsReport.Run)

	return &Core{
		cfg:       cfg,
		tl:        logger,
		counters:  counters,
		results:   results,
		reader:    reader,
		writer:    w,
		runner:    consumer.NewRunner(cfg, logger, reader, w, pipeline, counters, results),
		scheduler: scheduler,
		status:    server.NewStatusServer(cfg, logger, counters, results),
		metrics:   monitor.NewMetricsServer(cfg.Monitor, logger),
	}
}

func (c *Core) Counters() *stats.Counters {
	return c.counters
}

// Start 阻塞直到 ctx 取消或 runner 出错, HTTP 服务随 runner 一起退出
func (c *Core) Start(ctx context.Context) error {
	c.tl.Info("Starting worker core...",
		zap.String("service", c.cfg.Service.Name),
		zap.String("environment", c.cfg.Service.Environment),
	)

	// 启动调度器
	c.scheduler.Start(ctx)

	var wg conc.WaitGroup
	wg.Go(c.metrics.Run)
	wg.Go(c.status.Run)

	var runErr error
	wg.Go(func() {
		runErr = c.runner.Run(ctx)
		// runner 退出后关闭 HTTP 服务, wg.Wait 才能返回
		c.stopServers(ctx)
	})
	c.tl.Info("Worker started successfully")

	wg.Wait()
	if runErr != nil {
		return errors.Wrap(runErr, "runner stopped")
	}
	c.tl.Info("Shutting down worker due to context cancellation...")
	return nil
}

// Stop 关闭 Kafka 连接与缓存, 调用前应先取消 Start 的 ctx
func (c *Core) Stop(ctx context.Context) {
	c.stopOnce.Do(func() {
		c.tl.Info("Stopping worker core...")
		c.stopServers(ctx)

		// 停止调度器
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		c.scheduler.Stop(stopCtx)
		cancel()

		if err := c.reader.Close(); err != nil {
			c.tl.Warn("❌ Close reader failed", zap.Error(err))
		}
		if err := c.writer.Close(); err != nil {
			c.tl.Warn("❌ Close writer failed", zap.Error(err))
		}
		c.results.Shutdown()

		c.tl.Info("Worker core stopped.", zap.Any("stats", c.counters.Snapshot()))
	})
}

func (c *Core) stopServers(ctx context.Context) {
	if err := c.status.Stop(ctx); err != nil {
		c.tl.Warn("❌ Stop status server failed", zap.Error(err))
	}
	if err := c.metrics.Stop(ctx); err != nil {
		c.tl.Warn("❌ Stop metrics server failed", zap.Error(err))
	}
}
