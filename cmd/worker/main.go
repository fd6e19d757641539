package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wallet-reputation/internal/worker"
	"wallet-reputation/internal/worker/config"
	"wallet-reputation/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run 返回进程退出码, 所有 defer 在 os.Exit 之前执行
func run() int {
	// 初始化配置文件
	cfg := config.InitConfig()

	// 初始化 trace provider
	shutdownTrace := logger.InitTrace("wallet-reputation", "worker")
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTrace(flushCtx)
	}()
	// 启动主 span
	ctx, span := logger.StartSpan(context.Background(), "main", "main")
	defer span.End()

	// 创建 root logger 并注入 trace 上下文
	rootLogger := logger.NewLoggerWithDir(cfg.Service.Name, cfg.Log.Dir)
	logger.SetLogLevel(cfg.Log.Level)
	tl := logger.WithTrace(ctx, rootLogger)
	defer func() { _ = tl.Sync() }()

	// 启动配置热加载监听
	go config.WatchConfig("")

	// 初始化worker
	core := worker.New(cfg, tl)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 监听操作系统信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	done := make(chan error, 1)
	go func() {
		tl.Info("Starting wallet-reputation worker...")
		done <- core.Start(ctx)
	}()

	var runErr error
	select {
	case <-quit:
		tl.Info("Received shutdown signal, starting graceful shutdown...")
		cancel()
		runErr = <-done
	case runErr = <-done:
		cancel()
	}

	// 关闭资源
	core.Stop(ctx)
	tl.Info("Shutting down all cores...")

	if runErr != nil {
		tl.Error("❌ Worker stopped with error", zap.Error(runErr))
		return 1
	}
	return 0
}
