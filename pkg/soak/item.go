package soak

import "time"

// Item is the payload the harness pushes through the queue.
type Item struct {
	ID         int64
	Producer   int
	Key        int
	EnqueuedAt time.Time
}

// MakeID packs a producer index and its sequence number into an item ID.
// seq must fit in 32 bits; settings.Soak caps ItemsPerProducer accordingly.
func MakeID(producer, seq int) int64 {
	return int64(producer)<<32 | int64(uint32(seq))
}

// SplitID is the inverse of MakeID.
func SplitID(id int64) (producer, seq int) {
	return int(id >> 32), int(uint32(id))
}
