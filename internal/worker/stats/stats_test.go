package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounters_Snapshot(t *testing.T) {
	start := time.Unix(1000, 0)
	now := start
	c := NewWithClock(func() time.Time { return now })

	c.IncConsumed()
	c.IncConsumed()
	c.IncScored()
	c.IncFailed()
	c.IncProduced()

	now = start.Add(1234567 * time.Microsecond)
	s := c.Snapshot()
	assert.Equal(t, Snapshot{
		UptimeSeconds: 1.23,
		TotalConsumed: 2,
		TotalScored:   1,
		TotalFailed:   1,
		TotalProduced: 1,
	}, s)
}

func TestCounters_ResetKeepsUptime(t *testing.T) {
	start := time.Unix(1000, 0)
	now := start
	c := NewWithClock(func() time.Time { return now })
	c.IncConsumed()
	c.IncScored()

	now = start.Add(10 * time.Second)
	c.Reset()
	s := c.Snapshot()
	assert.Zero(t, s.TotalConsumed)
	assert.Zero(t, s.TotalScored)
	assert.Equal(t, 10.0, s.UptimeSeconds)
}

func TestCounters_ConcurrentReaders(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = c.Snapshot()
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		c.IncConsumed()
		c.IncScored()
		c.IncProduced()
	}
	wg.Wait()

	s := c.Snapshot()
	assert.Equal(t, int64(1000), s.TotalConsumed)
	assert.Equal(t, s.TotalConsumed, s.TotalScored+s.TotalFailed)
}
