package job

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// JobFunc 定义作业执行函数
type JobFunc func(ctx context.Context) error

type scheduledJob struct {
	name     string
	interval time.Duration
	fn       JobFunc
}

// Scheduler 周期作业调度器, Start 之后注册的作业不会运行
type Scheduler struct {
	mu      sync.Mutex
	jobs    []scheduledJob
	running bool
	cancel  context.CancelFunc
	wg      conc.WaitGroup
	logger  *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// RegisterJob interval <= 0 的作业直接忽略
func (s *Scheduler) RegisterJob(name string, interval time.Duration, fn JobFunc) {
	if interval <= 0 {
		s.logger.Info("Job disabled", zap.String("job", name))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, scheduledJob{name: name, interval: interval, fn: fn})
	s.logger.Info("Registered job", zap.String("job", name), zap.Duration("interval", interval))
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, j := range s.jobs {
		s.wg.Go(func() { s.runJob(ctx, j) })
	}
}

// Stop 取消所有作业并等待退出, ctx 到期后不再等待
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.logger.Warn("Stopping scheduler...")
	waitCh := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		s.logger.Info("All jobs stopped successfully")
	case <-ctx.Done():
		s.logger.Warn("Context deadline exceeded while waiting for jobs to stop")
	}
}

func (s *Scheduler) runJob(ctx context.Context, job scheduledJob) {
	ticker := time.NewTicker(job.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.executeJob(ctx, job)
		case <-ctx.Done():
			s.logger.Info("Context cancelled, stopping job", zap.String("job", job.name))
			return
		}
	}
}

// executeJob 单次执行的超时为周期的一半
func (s *Scheduler) executeJob(ctx context.Context, job scheduledJob) {
	jobCtx, cancel := context.WithTimeout(ctx, job.interval/2)
	defer cancel()

	startTime := time.Now()
	if err := job.fn(jobCtx); err != nil {
		s.logger.Error("Job execution failed",
			zap.String("job", job.name),
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
		return
	}
	s.logger.Debug("Job execution completed",
		zap.String("job", job.name),
		zap.Duration("duration", time.Since(startTime)))
}
