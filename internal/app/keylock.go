package app

import (
	"sync"

	"github.com/dkeye/Huddle/internal/domain"
)

const lockShards = 64

// convLock serializes mutations per conversation while letting
// unrelated conversations proceed in parallel. Sharded so the lock
// table itself never becomes a point of contention.
type convLock struct {
	shards [lockShards]sync.Mutex
}

func (l *convLock) lock(id domain.ConversationID) *sync.Mutex {
	m := &l.shards[uint64(id)%lockShards]
	m.Lock()
	return m
}
