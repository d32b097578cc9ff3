// Package linering keeps the most recent lines of text inside a bounded
// block. Appends evict whole oldest lines until the newcomer fits; a line
// that could never fit on its own is skipped outright.
package linering

import (
	"bytes"
	"strings"
)

// Ring is a newline-joined text block bounded by a line count and a byte
// size. It belongs to one execution context.
type Ring struct {
	buf      []byte
	lines    int
	maxLines int
	maxBytes int
}

// New returns a Ring bounded by maxLines lines and maxBytes bytes.
// Bounds below 1 are coerced to 1.
func New(maxLines, maxBytes int) *Ring {
	if maxLines < 1 {
		maxLines = 1
	}
	if maxBytes < 1 {
		maxBytes = 1
	}
	return &Ring{
		buf:      make([]byte, 0, maxBytes),
		maxLines: maxLines,
		maxBytes: maxBytes,
	}
}

// Append adds line as the newest entry, evicting oldest lines while the
// ring is at its line bound or the bytes would not fit. A line longer
// than the whole ring is dropped without disturbing existing content.
// Embedded newlines count toward the line bound.
func (r *Ring) Append(line string) {
	if len(line) > r.maxBytes {
		return
	}
	for r.lines >= r.maxLines || r.needed(len(line)) > r.maxBytes {
		if !r.evictOldest() {
			return
		}
	}
	if len(r.buf) > 0 {
		r.buf = append(r.buf, '\n')
	}
	r.buf = append(r.buf, line...)
	r.lines += 1 + strings.Count(line, "\n")
}

// needed is the total size after joining n more bytes to the block.
func (r *Ring) needed(n int) int {
	if len(r.buf) == 0 {
		return n
	}
	return len(r.buf) + 1 + n
}

// evictOldest removes the first line, or the whole block when no
// separator remains. It reports false on an empty ring.
func (r *Ring) evictOldest() bool {
	if r.lines == 0 {
		return false
	}
	if i := bytes.IndexByte(r.buf, '\n'); i >= 0 {
		r.buf = append(r.buf[:0], r.buf[i+1:]...)
	} else {
		r.buf = r.buf[:0]
	}
	r.lines--
	return true
}

// Content returns the current block, lines joined by '\n' without a
// trailing newline.
func (r *Ring) Content() string { return string(r.buf) }

// Lines returns the number of resident lines.
func (r *Ring) Lines() int { return r.lines }

// Len returns the resident size in bytes.
func (r *Ring) Len() int { return len(r.buf) }

// MaxLines returns the configured line bound.
func (r *Ring) MaxLines() int { return r.maxLines }

// Clear drops all content.
func (r *Ring) Clear() {
	r.buf = r.buf[:0]
	r.lines = 0
}
