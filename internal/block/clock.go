package block

import (
	"sync"
	"time"
)

// Clock produces millisecond timestamps that never decrease.
type Clock interface {
	NowMillis() uint64
}

// SystemClock reads the wall clock. If the wall clock steps backwards the last
// reading is repeated.
type SystemClock struct {
	mu   sync.Mutex
	last uint64
}

func (c *SystemClock) NowMillis() uint64 {
	now := uint64(time.Now().UnixMilli())

	c.mu.Lock()
	defer c.mu.Unlock()
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// FixedClock always returns the same timestamp.
type FixedClock uint64

func (c FixedClock) NowMillis() uint64 {
	return uint64(c)
}
