// Package reader provides a generic read-only cursor over an ordered,
// end-terminated sequence.
package reader

import (
	"errors"
	"fmt"
)

// ErrRead is the root of every error raised while reading a sequence.
var ErrRead = errors.New("read error")

// ErrEndOfInput is returned when a read is attempted past the terminal element.
var ErrEndOfInput = fmt.Errorf("%w: end of input", ErrRead)

// Error describes a failed cursor operation
type Error struct {
	Op  string // cursor operation that failed
	Pos int    // index the cursor was at
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d: %v", e.Op, e.Pos, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cursor is a positional view over items. It never copies or modifies the
// slice it is given; it only stores the index of the current element.
type Cursor[T any] struct {
	items []T
	isEnd func(T) bool
	pos   int
}

// New creates a Cursor over items. isEnd identifies the terminal element;
// the cursor is at end once it reaches that element or runs past the slice.
func New[T any](items []T, isEnd func(T) bool) *Cursor[T] {
	return &Cursor[T]{items: items, isEnd: isEnd}
}

// Pos returns the index of the current element
func (c *Cursor[T]) Pos() int {
	return c.pos
}

// Peek returns the current element without advancing. Past the end of the
// slice it keeps returning the last element.
func (c *Cursor[T]) Peek() T {
	if c.pos < len(c.items) {
		return c.items[c.pos]
	}
	if len(c.items) > 0 {
		return c.items[len(c.items)-1]
	}
	var zero T
	return zero
}

// Previous returns the most recently consumed element, or the zero value if
// nothing has been consumed yet.
func (c *Cursor[T]) Previous() T {
	if c.pos == 0 || c.pos > len(c.items) {
		var zero T
		return zero
	}
	return c.items[c.pos-1]
}

// AtEnd reports whether the cursor is at or past the terminal element
func (c *Cursor[T]) AtEnd() bool {
	if c.pos >= len(c.items) {
		return true
	}
	return c.isEnd != nil && c.isEnd(c.items[c.pos])
}

// Check reports whether the current element satisfies pred. It is always
// false at end.
func (c *Cursor[T]) Check(pred func(T) bool) bool {
	if c.AtEnd() {
		return false
	}
	return pred(c.items[c.pos])
}

// Match consumes and returns the current element if it satisfies pred.
// Otherwise the position is unchanged and ok is false.
func (c *Cursor[T]) Match(pred func(T) bool) (item T, ok bool) {
	if !c.Check(pred) {
		return item, false
	}
	item = c.items[c.pos]
	c.pos++
	return item, true
}

// Advance consumes and returns the current element. It fails with
// ErrEndOfInput when the cursor is already at end.
func (c *Cursor[T]) Advance() (T, error) {
	if c.AtEnd() {
		var zero T
		return zero, &Error{Op: "advance", Pos: c.pos, Err: ErrEndOfInput}
	}
	item := c.items[c.pos]
	c.pos++
	return item, nil
}
