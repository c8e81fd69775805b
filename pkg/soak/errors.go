package soak

import "github.com/pkg/errors"

var (
	// ErrDuplicateDelivery is returned when some item came out of the queue twice.
	ErrDuplicateDelivery = errors.New("soak: item delivered more than once")
	// ErrLostItems is returned when the run ended with items never delivered.
	ErrLostItems = errors.New("soak: items never delivered")
	// ErrTimeout is returned when the configured run timeout expired first.
	ErrTimeout = errors.New("soak: run did not finish in time")
)
