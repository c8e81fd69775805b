package queue

import "context"

// Predicate reports whether a pending item should be handed to the caller.
// A nil Predicate selects any item.
//
// Predicates run while the queue lock is held: they must be fast and must not
// call back into the queue.
type Predicate[T any] func(item T) bool

// Any is the always-true predicate.
func Any[T any](T) bool { return true }

// orAny replaces a nil predicate with Any.
func orAny[T any](match Predicate[T]) Predicate[T] {
	if match == nil {
		return Any[T]
	}
	return match
}

// Queue is a generic interface for unbounded FIFO queues with selective retrieval.
type Queue[T any] interface {
	// Put appends an item to the tail and hands it to a parked Get if one matches.
	// It never blocks beyond acquiring the queue lock.
	Put(item T)

	// Get removes and returns the oldest item satisfying match.
	// If none is pending it parks until a Put supplies one or ctx is done.
	// Returns an error wrapping ErrCancelled and ctx.Err() when abandoned.
	Get(ctx context.Context, match Predicate[T]) (T, error)

	// GetNowait removes and returns the oldest item satisfying match.
	// Returns (zero, false) if there is none; it never blocks.
	GetNowait(match Predicate[T]) (T, bool)

	// GetAll removes and returns every item satisfying match, in insertion order.
	// Returns an empty slice if there is none.
	GetAll(match Predicate[T]) []T

	// Flush removes and returns every pending item.
	Flush() []T

	// Empty reports whether no items are pending. Parked Get calls are not counted.
	Empty() bool
}
