package job

import (
	"context"

	"go.uber.org/zap"

	"wallet-reputation/internal/worker/stats"
)

const STATS_REPORT_JOB = "stats_report"

// StatsReport 定期把计数器快照写入日志
type StatsReport struct {
	tl       *zap.Logger
	counters *stats.Counters
}

func NewStatsReport(counters *stats.Counters, logger *zap.Logger) *StatsReport {
	return &StatsReport{tl: logger, counters: counters}
}

func (r *StatsReport) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.counters.Snapshot()
	r.tl.Info("📊 Worker stats",
		zap.Float64("uptime_seconds", snap.UptimeSeconds),
		zap.Int64("total_consumed", snap.TotalConsumed),
		zap.Int64("total_scored", snap.TotalScored),
		zap.Int64("total_failed", snap.TotalFailed),
		zap.Int64("total_produced", snap.TotalProduced),
	)
	return nil
}
