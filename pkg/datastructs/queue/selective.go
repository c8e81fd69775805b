package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

var _ Queue[int] = (*Selective[int])(nil)

// Config holds configuration for a Selective queue.
type Config struct {
	// Name identifies the queue in log entries.
	Name string

	// Logger receives debug entries about cancelled and settled waiters.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Selective is an unbounded, concurrent-safe FIFO queue from which consumers
// may take the head item or the first item satisfying a predicate.
//
// Behavior:
//   - Items keep insertion order; a predicate match may remove an item from
//     anywhere in the queue without reordering the rest.
//   - A Get that finds no match parks until a Put supplies one. Parked Get
//     calls are served oldest first.
//   - Every item is handed to exactly one successful Get, GetNowait, GetAll
//     or Flush.
//
// One mutex guards both the pending items and the parked waiters.
type Selective[T any] struct {
	mu      sync.Mutex
	items   store[T]
	waiters registry[T]
	log     *zap.Logger
}

// NewSelective creates an empty Selective queue.
func NewSelective[T any](cfg Config) *Selective[T] {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Name != "" {
		log = log.With(zap.String("queue", cfg.Name))
	}

	return &Selective[T]{log: log}
}

// Put appends item to the tail and wakes the oldest parked Get it can satisfy.
func (q *Selective[T]) Put(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items.pushBack(item)
	q.waiters.settle(&q.items)
}

// PutMany appends items in order, then settles parked Get calls once.
func (q *Selective[T]) PutMany(items ...T) {
	if len(items) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, item := range items {
		q.items.pushBack(item)
	}
	if n := q.waiters.settle(&q.items); n > 1 {
		q.log.Debug("settled waiters", zap.Int("delivered", n), zap.Int("pending", q.items.len()))
	}
}

// Get removes and returns the oldest item satisfying match, parking until one
// arrives if necessary. A nil match selects any item.
//
// If ctx ends first, Get returns an error matching both ErrCancelled and
// ctx.Err(). If an item was delivered before the cancellation was observed,
// the item is returned and the cancellation is ignored.
func (q *Selective[T]) Get(ctx context.Context, match Predicate[T]) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	match = orAny(match)

	q.mu.Lock()
	// Fast path
	if item, ok := q.items.removeFirst(match); ok {
		q.mu.Unlock()
		return item, nil
	}
	w := q.waiters.register(match)
	q.mu.Unlock()

	select {
	case item := <-w.slot:
		return item, nil
	case <-ctx.Done():
	}

	q.mu.Lock()
	cancelled := q.waiters.cancel(w)
	q.mu.Unlock()

	if !cancelled {
		// Lost the race to a Put: the item is already in the slot.
		return <-w.slot, nil
	}

	q.log.Debug("get cancelled", zap.Error(ctx.Err()))

	var zero T
	return zero, &cancelledError{cause: ctx.Err()}
}

// GetNowait removes and returns the oldest item satisfying match.
// Returns (zero, false) if there is none.
func (q *Selective[T]) GetNowait(match Predicate[T]) (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.removeFirst(orAny(match))
}

// GetAll removes and returns every item satisfying match, in insertion order.
// The result is never nil.
func (q *Selective[T]) GetAll(match Predicate[T]) []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.drain(orAny(match))
}

// Flush removes and returns every pending item.
func (q *Selective[T]) Flush() []T {
	return q.GetAll(nil)
}

// Empty reports whether no items are pending.
func (q *Selective[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.isEmpty()
}

// Len returns the number of pending items.
func (q *Selective[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.items.len()
}

// Waiting returns the number of parked Get calls.
func (q *Selective[T]) Waiting() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.waiters.len()
}
