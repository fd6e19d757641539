package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const DEFAULT_LOG_DIR = "logs"

var (
	mu       sync.Mutex
	logger   *zap.Logger
	logLevel = zap.NewAtomicLevel()
)

// NewLogger 文件(JSON, lumberjack 轮转) + 控制台双输出
func NewLogger(serviceName string) *zap.Logger {
	return NewLoggerWithDir(serviceName, DEFAULT_LOG_DIR)
}

func NewLoggerWithDir(serviceName, logDir string) *zap.Logger {
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(os.Stdout), logLevel)
	return newLogger(serviceName, logDir, consoleCore)
}

// NewFileLogger 只写文件, 给需要独占 stdout 的命令行工具使用
func NewFileLogger(serviceName, logDir string) *zap.Logger {
	return newLogger(serviceName, logDir)
}

func newLogger(serviceName, logDir string, extra ...zapcore.Core) *zap.Logger {
	if logDir == "" {
		logDir = DEFAULT_LOG_DIR
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		panic(err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.LevelKey = "level"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	// 使用lumberjack进行日志轮转
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, serviceName+".log"),
		MaxSize:    100, // megabytes
		MaxBackups: 5,   // 保留的旧文件数
		MaxAge:     7,   // days
		Compress:   true,
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(writer), logLevel)
	cores := append([]zapcore.Core{fileCore}, extra...)

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("service", serviceName))

	mu.Lock()
	logger = l
	mu.Unlock()
	return l
}

// SetLogLevel 运行时调整日志级别, 非法级别忽略
func SetLogLevel(level string) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return
	}
	logLevel.SetLevel(zapLevel)

	mu.Lock()
	l := logger
	mu.Unlock()
	if l != nil {
		l.Info("Log level set to", zap.String("level", level))
	}
}

func Level() zapcore.Level {
	return logLevel.Level()
}

// WithTrace 把 ctx 中 span 的 trace_id/span_id 注入 logger, 没有有效 span 时原样返回
func WithTrace(ctx context.Context, l *zap.Logger) *zap.Logger {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
