package scoring

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-reputation/internal/worker/model"
)

const EXCEPTION_PREFIX = "Exception during processing: "

var ErrNoValidTransactions = errors.New("No valid transactions found")

// Failure 单个钱包的失败结果
type Failure struct {
	Err    error  // 顶层 error 字段
	Reason string // categories[0].error
}

// Outcome 单个钱包的处理结果, Scored 与 Failure 有且只有一个非空
type Outcome struct {
	WalletAddress string
	Rows          []model.Transaction
	Scored        *model.ScoredWallet
	Failure       *Failure
	Elapsed       time.Duration
}

func (o Outcome) OK() bool {
	return o.Scored != nil && o.Failure == nil
}

type Option func(*Pipeline)

// WithClock 替换当前时间来源, 持有时长与默认时间戳都依赖它
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// Pipeline 钱包打分流水线, 无状态, 可以在多个消息间复用
type Pipeline struct {
	tl  *zap.Logger
	now func() time.Time
}

func NewPipeline(logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		tl:  logger,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Now() time.Time {
	return p.now()
}

// Score 解析原始消息并打分, 解析失败同样转换为失败结果
func (p *Pipeline) Score(raw []byte) Outcome {
	start := p.now()

	var msg model.WalletMessage
	if err := sonic.Unmarshal(raw, &msg); err != nil {
		addr := walletAddressOf(raw)
		p.tl.Warn("❌ JSON Parse Error", zap.String("wallet", addr), zap.Error(err))
		out := ExceptionOutcome(addr, errors.Wrap(err, "invalid wallet message"))
		out.Elapsed = p.now().Sub(start)
		return out
	}

	out := p.ScoreWallet(msg)
	out.Elapsed = p.now().Sub(start)
	return out
}

// ScoreWallet 对已解析的钱包消息打分
func (p *Pipeline) ScoreWallet(msg model.WalletMessage) Outcome {
	start := p.now()
	out := p.guard(msg.WalletAddress, func() Outcome {
		return p.scoreWallet(msg)
	})
	out.Elapsed = p.now().Sub(start)
	return out
}

func (p *Pipeline) scoreWallet(msg model.WalletMessage) Outcome {
	rows := Normalize(msg)
	if len(rows) == 0 {
		return Outcome{
			WalletAddress: msg.WalletAddress,
			Rows:          rows,
			Failure: &Failure{
				Err:    ErrNoValidTransactions,
				Reason: ErrNoValidTransactions.Error(),
			},
		}
	}

	lpFeatures := ExtractLPFeatures(rows, p.now())
	lpScore, lpBreakdown := ScoreLP(lpFeatures)

	swapFeatures := ExtractSwapFeatures(rows)
	swapScore, swapBreakdown := ScoreSwap(swapFeatures)

	final, complete := Compose(lpScore, swapScore, lpFeatures, swapFeatures, lpBreakdown, swapBreakdown)
	if err := checkFinite(complete); err != nil {
		p.tl.Warn("❌ Non-finite score", zap.String("wallet", msg.WalletAddress), zap.Error(err))
		return ExceptionOutcome(msg.WalletAddress, err)
	}

	p.tl.Debug("✅ Wallet scored",
		zap.String("wallet", msg.WalletAddress),
		zap.Int("rows", len(rows)),
		zap.Float64("lp_score", lpScore),
		zap.Float64("swap_score", swapScore),
		zap.Float64("final_score", final),
		zap.Strings("tags", complete.UserTags),
	)

	return Outcome{
		WalletAddress: msg.WalletAddress,
		Rows:          rows,
		Scored: &model.ScoredWallet{
			WalletAddress: msg.WalletAddress,
			FinalScore:    final,
			Features:      complete,
		},
	}
}

// guard 捕获打分过程中的 panic, 转换为失败结果
func (p *Pipeline) guard(walletAddress string, fn func() Outcome) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			p.tl.Error("❌ Scoring panic", zap.String("wallet", walletAddress), zap.Any("panic", r))
			out = ExceptionOutcome(walletAddress, fmt.Errorf("%v", r))
		}
	}()
	return fn()
}

// ExceptionOutcome 异常失败结果, transaction_count 为 0
func ExceptionOutcome(walletAddress string, cause error) Outcome {
	return Outcome{
		WalletAddress: walletAddress,
		Failure: &Failure{
			Err:    errors.Errorf("%s%s", EXCEPTION_PREFIX, cause.Error()),
			Reason: cause.Error(),
		},
	}
}

// walletAddressOf 消息无法解析时尽量取出 wallet_address
func walletAddressOf(raw []byte) string {
	node, err := sonic.Get(raw, "wallet_address")
	if err != nil {
		return ""
	}
	addr, err := node.String()
	if err != nil {
		return ""
	}
	return addr
}
