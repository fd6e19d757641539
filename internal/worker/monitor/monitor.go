package monitor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/config"
)

const shutdownTimeout = 5 * time.Second

// MetricsServer 暴露 /metrics, 未启用时所有方法都是空操作
type MetricsServer struct {
	cfg    config.MonitorConfig
	tl     *zap.Logger
	server *http.Server
}

func NewMetricsServer(cfg config.MonitorConfig, logger *zap.Logger) *MetricsServer {
	s := &MetricsServer{cfg: cfg, tl: logger}
	if !cfg.Enable || cfg.PrometheusAddr == "" {
		return s
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s.server = &http.Server{
		Addr:              cfg.PrometheusAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run 阻塞直到服务关闭
func (s *MetricsServer) Run() {
	if s.server == nil {
		return
	}

	s.tl.Info("Starting metrics server", zap.String("addr", s.cfg.PrometheusAddr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.tl.Error("❌ Metrics server stopped", zap.Error(err))
	}
}

// Stop 优雅关闭 HTTP 服务
func (s *MetricsServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.server.SetKeepAlivesEnabled(false)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
