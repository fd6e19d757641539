package stats

import (
	"math"
	"sync"
	"time"
)

// Counters 运行时计数器, 由消费循环写入, 状态接口读取
type Counters struct {
	mu        sync.RWMutex
	startTime time.Time
	consumed  int64
	scored    int64
	failed    int64
	produced  int64
	now       func() time.Time
}

// Snapshot 计数器快照
type Snapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	TotalConsumed int64   `json:"total_consumed"`
	TotalScored   int64   `json:"total_scored"`
	TotalFailed   int64   `json:"total_failed"`
	TotalProduced int64   `json:"total_produced"`
}

func New() *Counters {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Counters {
	return &Counters{
		startTime: now(),
		now:       now,
	}
}

func (c *Counters) IncConsumed() {
	c.mu.Lock()
	c.consumed++
	c.mu.Unlock()
}

func (c *Counters) IncScored() {
	c.mu.Lock()
	c.scored++
	c.mu.Unlock()
}

func (c *Counters) IncFailed() {
	c.mu.Lock()
	c.failed++
	c.mu.Unlock()
}

func (c *Counters) IncProduced() {
	c.mu.Lock()
	c.produced++
	c.mu.Unlock()
}

// Snapshot uptime 保留两位小数
func (c *Counters) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	uptime := c.now().Sub(c.startTime).Seconds()
	return Snapshot{
		UptimeSeconds: math.Round(uptime*100) / 100,
		TotalConsumed: c.consumed,
		TotalScored:   c.scored,
		TotalFailed:   c.failed,
		TotalProduced: c.produced,
	}
}

// Reset 清空计数, 不影响 uptime
func (c *Counters) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.consumed = 0
	c.scored = 0
	c.failed = 0
	c.produced = 0
}
