package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/cache"
	"wallet-reputation/internal/worker/config"
	"wallet-reputation/internal/worker/stats"
	"wallet-reputation/pkg/logger"
)

const (
	TRACER_NAME     = "server"
	shutdownTimeout = 5 * time.Second
)

type serviceInfo struct {
	Service     string `json:"service"`
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// StatusServer 服务状态接口: 服务信息, 健康检查, 计数器, 最近一次打分结果
type StatusServer struct {
	cfg      config.Config
	tl       *zap.Logger
	counters *stats.Counters
	results  *cache.ResultCache
	server   *http.Server
}

func NewStatusServer(cfg config.Config, logger *zap.Logger, counters *stats.Counters, results *cache.ResultCache) *StatusServer {
	s := &StatusServer{
		cfg:      cfg,
		tl:       logger,
		counters: counters,
		results:  results,
	}
	if cfg.Server.Enable && cfg.Server.Addr != "" {
		s.server = &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           s.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return s
}

func (s *StatusServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.root)
	mux.HandleFunc("GET /api/v1/health", s.health)
	mux.HandleFunc("GET /api/v1/stats", s.stats)
	mux.HandleFunc("GET /api/v1/wallets/{address}", s.wallet)
	return mux
}

// Run 阻塞直到服务关闭, 未启用时直接返回
func (s *StatusServer) Run() {
	if s.server == nil {
		return
	}

	s.tl.Info("Starting status server", zap.String("addr", s.cfg.Server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.tl.Error("❌ Status server stopped", zap.Error(err))
	}
}

func (s *StatusServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	s.server.SetKeepAlivesEnabled(false)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *StatusServer) root(w http.ResponseWriter, r *http.Request) {
	_, span := logger.StartSpanWithRequest(r, TRACER_NAME, "root")
	defer span.End()

	s.writeJSON(w, http.StatusOK, serviceInfo{
		Service:     s.cfg.Service.Name,
		Status:      "running",
		Environment: s.cfg.Service.Environment,
	})
}

func (s *StatusServer) health(w http.ResponseWriter, r *http.Request) {
	_, span := logger.StartSpanWithRequest(r, TRACER_NAME, "health")
	defer span.End()

	s.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

func (s *StatusServer) stats(w http.ResponseWriter, r *http.Request) {
	_, span := logger.StartSpanWithRequest(r, TRACER_NAME, "stats")
	defer span.End()

	s.writeJSON(w, http.StatusOK, s.counters.Snapshot())
}

func (s *StatusServer) wallet(w http.ResponseWriter, r *http.Request) {
	ctx, span := logger.StartSpanWithRequest(r, TRACER_NAME, "wallet")
	defer span.End()

	address := r.PathValue("address")
	if s.results == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "result cache disabled"})
		return
	}
	event, ok := s.results.Get(address)
	if !ok {
		logger.WithTrace(ctx, s.tl).Debug("wallet result not cached", zap.String("wallet", address))
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "wallet not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

func (s *StatusServer) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		s.tl.Error("❌ Marshal response failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
