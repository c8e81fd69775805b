package queue

type waiterState uint8

const (
	waiterRegistered waiterState = iota
	waiterSatisfied
	waiterCancelled
)

// waiter is a parked Get.
type waiter[T any] struct {
	match Predicate[T]
	slot  chan T // capacity 1, written at most once
	state waiterState
}

// registry tracks parked Get calls in registration order.
// It is NOT thread-safe; the owning Selective holds its lock around every call.
type registry[T any] struct {
	waiters []*waiter[T]
}

// register parks a new waiter behind all existing ones.
func (r *registry[T]) register(match Predicate[T]) *waiter[T] {
	w := &waiter[T]{
		match: match,
		slot:  make(chan T, 1),
		state: waiterRegistered,
	}
	r.waiters = append(r.waiters, w)
	return w
}

// settle walks the waiters oldest first and hands each one the earliest
// pending item its predicate accepts. Served waiters leave the registry.
// Returns the number of deliveries.
func (r *registry[T]) settle(s *store[T]) int {
	if len(r.waiters) == 0 || s.isEmpty() {
		return 0
	}

	delivered := 0
	remaining := r.waiters[:0]

	for i, w := range r.waiters {
		if s.isEmpty() {
			// Nothing left to hand out, keep the rest in order.
			remaining = append(remaining, r.waiters[i:]...)
			break
		}

		item, ok := s.removeFirst(w.match)
		if !ok {
			remaining = append(remaining, w)
			continue
		}

		w.state = waiterSatisfied
		w.slot <- item // never blocks: single write into a one-slot buffer
		delivered++
	}

	// Drop references held past the new length.
	clear(r.waiters[len(remaining):])
	r.waiters = remaining
	return delivered
}

// cancel removes w if it is still parked and reports whether it did.
// A false result means w was already satisfied, and its slot holds the item,
// or was cancelled before.
func (r *registry[T]) cancel(w *waiter[T]) bool {
	if w.state != waiterRegistered {
		return false
	}

	for i, candidate := range r.waiters {
		if candidate == w {
			copy(r.waiters[i:], r.waiters[i+1:])
			r.waiters[len(r.waiters)-1] = nil
			r.waiters = r.waiters[:len(r.waiters)-1]
			break
		}
	}

	w.state = waiterCancelled
	return true
}

// len returns the number of parked waiters.
func (r *registry[T]) len() int {
	return len(r.waiters)
}
