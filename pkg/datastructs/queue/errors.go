package queue

import (
	"github.com/pkg/errors"
)

// ErrCancelled is matched by the error Get returns when its context ends
// before a matching item is delivered.
var ErrCancelled = errors.New("queue: get cancelled")

// cancelledError carries the context error that ended a Get.
// It matches both ErrCancelled and the context error under errors.Is.
type cancelledError struct {
	cause error
}

func (e *cancelledError) Error() string {
	return ErrCancelled.Error() + ": " + e.cause.Error()
}

func (e *cancelledError) Unwrap() error { return e.cause }

func (e *cancelledError) Is(target error) bool { return target == ErrCancelled }
