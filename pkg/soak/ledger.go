package soak

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/huynhanx03/go-selectq/pkg/utils"
)

const defaultLedgerShards = 64

// Ledger records delivered item IDs and counts repeats.
// It shards by ID hash so concurrent consumers rarely contend.
type Ledger struct {
	shards []*ledgerShard
	mask   uint64
}

type ledgerShard struct {
	sync.Mutex
	seen       map[int64]uint32
	duplicates int

	// Keeps neighbouring shards off the same cache line.
	_ [64]byte
}

// NewLedger creates a ledger with shards rounded up to a power of two.
func NewLedger(shards int) *Ledger {
	if shards <= 0 {
		shards = defaultLedgerShards
	}
	n := utils.CeilToPowerOfTwo(shards)

	l := &Ledger{
		shards: make([]*ledgerShard, n),
		mask:   uint64(n - 1),
	}
	for i := range l.shards {
		l.shards[i] = &ledgerShard{seen: make(map[int64]uint32)}
	}
	return l
}

func (l *Ledger) shard(id int64) *ledgerShard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(id))
	return l.shards[xxhash.Sum64(buf[:])&l.mask]
}

// Record notes one delivery of id and reports whether it was the first.
func (l *Ledger) Record(id int64) bool {
	s := l.shard(id)
	s.Lock()
	defer s.Unlock()

	s.seen[id]++
	if s.seen[id] > 1 {
		s.duplicates++
		return false
	}
	return true
}

// Count returns how many times id was delivered.
func (l *Ledger) Count(id int64) int {
	s := l.shard(id)
	s.Lock()
	defer s.Unlock()
	return int(s.seen[id])
}

// Len returns the number of distinct IDs delivered.
// Shards are locked one at a time, so the total is not atomic.
func (l *Ledger) Len() int {
	total := 0
	for _, s := range l.shards {
		s.Lock()
		total += len(s.seen)
		s.Unlock()
	}
	return total
}

// Duplicates returns the number of repeated deliveries.
func (l *Ledger) Duplicates() int {
	total := 0
	for _, s := range l.shards {
		s.Lock()
		total += s.duplicates
		s.Unlock()
	}
	return total
}
