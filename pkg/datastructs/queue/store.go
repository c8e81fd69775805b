package queue

// node represents a single pending item in the store.
type node[T any] struct {
	item T
	prev *node[T]
	next *node[T]
}

// store is the ordered sequence of pending items.
// It is NOT thread-safe; the owning Selective holds its lock around every call.
type store[T any] struct {
	head  *node[T]
	tail  *node[T]
	count int
}

// pushBack adds an item to the tail.
func (s *store[T]) pushBack(item T) {
	n := &node[T]{item: item, prev: s.tail}
	if s.tail == nil {
		s.head = n
	} else {
		s.tail.next = n
	}
	s.tail = n
	s.count++
}

// removeFirst unlinks and returns the first item, scanning from the head,
// for which match reports true.
func (s *store[T]) removeFirst(match Predicate[T]) (T, bool) {
	for current := s.head; current != nil; current = current.next {
		if match(current.item) {
			s.unlink(current)
			return current.item, true
		}
	}

	var zero T
	return zero, false
}

// drain unlinks every matching item and returns them in insertion order.
func (s *store[T]) drain(match Predicate[T]) []T {
	out := make([]T, 0)

	var next *node[T]
	for current := s.head; current != nil; current = next {
		next = current.next // unlink clears the links

		if match(current.item) {
			s.unlink(current)
			out = append(out, current.item)
		}
	}
	return out
}

// snapshot returns a copy of the pending items in order.
func (s *store[T]) snapshot() []T {
	out := make([]T, 0, s.count)
	for current := s.head; current != nil; current = current.next {
		out = append(out, current.item)
	}
	return out
}

// len returns the number of pending items.
func (s *store[T]) len() int {
	return s.count
}

// isEmpty returns true if nothing is pending.
func (s *store[T]) isEmpty() bool {
	return s.head == nil
}

// unlink removes n from the list without disturbing the order of its neighbours.
func (s *store[T]) unlink(n *node[T]) {
	if n.prev == nil {
		s.head = n.next
	} else {
		n.prev.next = n.next
	}

	if n.next == nil {
		s.tail = n.prev
	} else {
		n.next.prev = n.prev
	}

	n.prev = nil
	n.next = nil
	s.count--
}
