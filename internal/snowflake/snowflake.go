// Package snowflake allocates process-local time-ordered identifiers.
package snowflake

import (
	"sync/atomic"
	"time"
)

const (
	epochMillis = 1420070400000 // 2015-01-01, keeps ids small
	seqBits     = 22
)

// Allocator implements core.IDAllocator with a single atomic word:
// high bits are milliseconds since epoch, low bits a sequence. CAS loop
// guarantees strict monotonicity even when the clock stalls or steps back.
type Allocator struct {
	last atomic.Int64
}

func New() *Allocator {
	return &Allocator{}
}

func (a *Allocator) NewID() int64 {
	for {
		now := (time.Now().UnixMilli() - epochMillis) << seqBits
		prev := a.last.Load()
		next := now
		if next <= prev {
			next = prev + 1
		}
		if a.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}

// Timestamp recovers the creation time embedded in an id.
func Timestamp(id int64) time.Time {
	ms := (id >> seqBits) + epochMillis
	return time.UnixMilli(ms)
}
