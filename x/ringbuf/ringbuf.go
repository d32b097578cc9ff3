// Package ringbuf provides a bounded FIFO over a fixed-size circular
// buffer. Push rejects the newcomer when full, Pop reports empty; there
// is no allocation after New and no locking. A Buffer belongs to one
// execution context.
package ringbuf

// Buffer is a bounded FIFO of T. Create instances with New; the zero
// value has no capacity and rejects every Push.
type Buffer[T any] struct {
	buf   []T
	head  int // next Pop position
	tail  int // next Push position
	count int
}

// New returns a Buffer holding at most capacity elements.
// capacity below 1 is coerced to 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{buf: make([]T, capacity)}
}

// Push appends v and reports whether it was accepted. A full buffer
// leaves its contents untouched and returns false.
func (b *Buffer[T]) Push(v T) bool {
	if b.count == len(b.buf) {
		return false
	}
	b.buf[b.tail] = v
	b.tail = (b.tail + 1) % len(b.buf)
	b.count++
	return true
}

// Pop removes and returns the oldest element. ok is false on empty.
func (b *Buffer[T]) Pop() (v T, ok bool) {
	if b.count == 0 {
		return v, false
	}
	var zero T
	v = b.buf[b.head]
	b.buf[b.head] = zero
	b.head = (b.head + 1) % len(b.buf)
	b.count--
	return v, true
}

// Len returns the number of queued elements.
func (b *Buffer[T]) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.buf) }

// Clear discards all queued elements.
func (b *Buffer[T]) Clear() {
	clear(b.buf)
	b.head, b.tail, b.count = 0, 0, 0
}
