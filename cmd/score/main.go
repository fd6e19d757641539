package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/config"
	"wallet-reputation/internal/worker/scoring"
	"wallet-reputation/pkg/logger"
)

// 一次性任务: 对单个钱包消息打分, 结果写到 stdout

func main() {
	configFile := flag.String("config", "", "config file, defaults to ./config/config.worker.yaml")
	pretty := flag.Bool("pretty", false, "indent the output")
	flag.Parse()

	if err := run(*configFile, flag.Arg(0), *pretty, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run input 为空或 "-" 时从 stdin 读取
func run(configFile, input string, pretty bool, stdin io.Reader, stdout io.Writer) error {
	startTime := time.Now()
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	shutdownTrace := logger.InitTrace("wallet-reputation", "score")
	defer func() { _ = shutdownTrace(context.Background()) }()
	ctx, span := logger.StartSpan(context.Background(), "main", "main")
	defer span.End()

	rootLogger := logger.NewFileLogger("score", cfg.Log.Dir)
	logger.SetLogLevel(cfg.Log.Level)
	tl := logger.WithTrace(ctx, rootLogger)
	defer func() { _ = tl.Sync() }()

	raw, err := readInput(input, stdin)
	if err != nil {
		return err
	}

	pipeline := scoring.NewPipeline(tl)
	out := pipeline.Score(raw)
	event := scoring.BuildEvent(out, pipeline.Now())

	var data []byte
	if pretty {
		data, err = sonic.ConfigStd.MarshalIndent(event, "", "  ")
	} else {
		data, err = sonic.Marshal(event)
	}
	if err != nil {
		return errors.Wrap(err, "marshal score event")
	}
	if _, err := fmt.Fprintln(stdout, string(data)); err != nil {
		return errors.Wrap(err, "write output")
	}

	tl.Info("Task completed successfully",
		zap.String("wallet", event.WalletAddress),
		zap.Bool("success", event.IsSuccess()),
		zap.Duration("taken_time", time.Since(startTime)),
	)
	return nil
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == "" || input == "-" {
		raw, err := io.ReadAll(stdin)
		return raw, errors.Wrap(err, "read stdin")
	}
	raw, err := os.ReadFile(input)
	return raw, errors.Wrapf(err, "read %s", input)
}
