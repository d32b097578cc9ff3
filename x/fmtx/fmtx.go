// Package fmtx provides a fixed-capacity, truncating string builder so
// messages can be formatted eagerly into bounded storage. Overflow is
// dropped, never grown; the Truncated flag records that it happened.
package fmtx

import "fmt"

// Builder accumulates bytes up to a fixed capacity. It implements
// io.Writer (always reporting success) so fmt.Fprintf can format straight
// into the bounded space.
type Builder struct {
	buf       []byte
	truncated bool
}

// NewBuilder returns a Builder with the given byte capacity.
// capacity below 1 is coerced to 1.
func NewBuilder(capacity int) *Builder {
	if capacity < 1 {
		capacity = 1
	}
	return &Builder{buf: make([]byte, 0, capacity)}
}

// Write appends p, dropping whatever exceeds the remaining room.
// The returned count always equals len(p) so formatted writes continue
// past the truncation point without erroring.
func (b *Builder) Write(p []byte) (int, error) {
	n := len(p)
	room := cap(b.buf) - len(b.buf)
	if len(p) > room {
		p = p[:room]
		b.truncated = true
	}
	b.buf = append(b.buf, p...)
	return n, nil
}

// WriteString appends s, dropping overflow.
func (b *Builder) WriteString(s string) {
	room := cap(b.buf) - len(b.buf)
	if len(s) > room {
		s = s[:room]
		b.truncated = true
	}
	b.buf = append(b.buf, s...)
}

// WriteByte appends a single byte if room remains.
func (b *Builder) WriteByte(c byte) {
	if len(b.buf) == cap(b.buf) {
		b.truncated = true
		return
	}
	b.buf = append(b.buf, c)
}

// Appendf formats into the builder, truncating at capacity.
func (b *Builder) Appendf(format string, args ...any) {
	fmt.Fprintf(b, format, args...)
}

// String returns the accumulated bytes as a string.
func (b *Builder) String() string { return string(b.buf) }

// Len returns the accumulated size in bytes.
func (b *Builder) Len() int { return len(b.buf) }

// Cap returns the fixed capacity.
func (b *Builder) Cap() int { return cap(b.buf) }

// Truncated reports whether any write has been cut since the last Reset.
func (b *Builder) Truncated() bool { return b.truncated }

// Reset empties the builder and clears the truncation flag.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.truncated = false
}
