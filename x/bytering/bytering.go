// Package bytering provides a bounded byte pipe between a producer and a
// consumer sharing one cooperative execution context. Reads and writes
// move what they can and never block; a full ring rejects the overflow.
package bytering

import "io"

// Ring is a power-of-two circular byte buffer with monotonic read/write
// indices.
type Ring struct {
	buf  []byte
	mask uint32
	rd   uint32 // consumer index (monotonic)
	wr   uint32 // producer index (monotonic)
}

// New returns a Ring whose capacity is size rounded up to a power of two,
// minimum 2.
func New(size int) *Ring {
	n := 2
	for n < size {
		n <<= 1
	}
	return &Ring{
		buf:  make([]byte, n),
		mask: uint32(n - 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

// Cap returns the ring capacity in bytes.
func (r *Ring) Cap() int { return len(r.buf) }

// Space returns the bytes a TryWrite could currently accept.
func (r *Ring) Space() int { return int(r.size() - (r.wr - r.rd)) }

// Available returns the bytes a TryRead could currently return.
func (r *Ring) Available() int { return int(r.wr - r.rd) }

// TryWrite copies as much of src as fits and returns the count.
func (r *Ring) TryWrite(src []byte) (n int) {
	if len(src) == 0 {
		return 0
	}
	space := r.Space()
	if space <= 0 {
		return 0
	}
	if len(src) < space {
		space = len(src)
	}
	n = space

	size := r.size()
	wrIdx := r.wr & r.mask
	first := int(size - wrIdx)
	if first > n {
		first = n
	}
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr += uint32(n)
	return n
}

// TryRead copies up to len(dst) pending bytes into dst and returns the
// count.
func (r *Ring) TryRead(dst []byte) (n int) {
	if len(dst) == 0 {
		return 0
	}
	avail := r.Available()
	if avail <= 0 {
		return 0
	}
	if len(dst) < avail {
		avail = len(dst)
	}
	n = avail

	size := r.size()
	rdIdx := r.rd & r.mask
	first := int(size - rdIdx)
	if first > n {
		first = n
	}
	copy(dst[:first], r.buf[rdIdx:rdIdx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd += uint32(n)
	return n
}

// Reset discards all pending bytes.
func (r *Ring) Reset() { r.rd = r.wr }

// Writer returns an io.Writer view that accepts every write and discards
// bytes that do not fit.
func (r *Ring) Writer() io.Writer { return lossyWriter{r} }

type lossyWriter struct{ r *Ring }

func (w lossyWriter) Write(p []byte) (int, error) {
	w.r.TryWrite(p)
	return len(p), nil
}
