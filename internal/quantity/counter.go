// Package quantity implements the bounded cup counter behind the +/- controls.
package quantity

import "errors"

const (
	Min     = 1
	Max     = 100
	Default = 2
)

var (
	ErrAboveMax = errors.New("quantity cannot exceed maximum")
	ErrBelowMin = errors.New("quantity cannot go below minimum")
)

// Counter is a cup count that never leaves [Min, Max].
// It is not safe for concurrent use; owners serialize access.
type Counter struct {
	value int
}

// NewCounter returns a counter at Default.
func NewCounter() *Counter {
	return &Counter{value: Default}
}

// NewCounterAt returns a counter at v, or ErrAboveMax / ErrBelowMin when v is out of range.
func NewCounterAt(v int) (*Counter, error) {
	if err := Check(v); err != nil {
		return nil, err
	}
	return &Counter{value: v}, nil
}

// Value returns the current count.
func (c *Counter) Value() int {
	return c.value
}

// Increment adds one cup. At Max the count is left unchanged and ErrAboveMax is returned.
func (c *Counter) Increment() error {
	if c.value >= Max {
		return ErrAboveMax
	}
	c.value++
	return nil
}

// Decrement removes one cup. At Min the count is left unchanged and ErrBelowMin is returned.
func (c *Counter) Decrement() error {
	if c.value <= Min {
		return ErrBelowMin
	}
	c.value--
	return nil
}

// Check reports whether q is an orderable quantity.
func Check(q int) error {
	switch {
	case q > Max:
		return ErrAboveMax
	case q < Min:
		return ErrBelowMin
	}
	return nil
}
