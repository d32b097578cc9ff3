package bytering

import (
	"bytes"
	"testing"
)

func TestOrderAcrossWrap(t *testing.T) {
	r := New(64)

	const N = 2000
	src := make([]byte, N)
	for i := range src {
		src[i] = byte(i)
	}

	// Interleave small writes and reads, forcing frequent wraps and
	// partial first-span progress.
	p := src
	dst := make([]byte, 0, N)
	var tmp [17]byte
	for len(dst) < N {
		if len(p) > 0 {
			step := 7
			if step > len(p) {
				step = len(p)
			}
			n := r.TryWrite(p[:step])
			p = p[n:]
		}
		if n := r.TryRead(tmp[:]); n > 0 {
			dst = append(dst, tmp[:n]...)
		}
	}
	if !bytes.Equal(dst, src) {
		t.Fatal("stream corrupted across wrap")
	}
}

func TestFullRingRejectsOverflow(t *testing.T) {
	r := New(8)
	n := r.TryWrite([]byte("0123456789"))
	if n != 8 {
		t.Fatalf("TryWrite = %d, want 8", n)
	}
	if n := r.TryWrite([]byte("x")); n != 0 {
		t.Fatalf("TryWrite on full = %d, want 0", n)
	}
	got := make([]byte, 8)
	if n := r.TryRead(got); n != 8 {
		t.Fatalf("TryRead = %d, want 8", n)
	}
	if string(got) != "01234567" {
		t.Fatalf("TryRead data = %q, want %q", got, "01234567")
	}
}

func TestSpaceAvailableReset(t *testing.T) {
	r := New(16)
	if r.Space() != 16 || r.Available() != 0 {
		t.Fatalf("fresh ring space=%d avail=%d", r.Space(), r.Available())
	}
	r.TryWrite([]byte("abcd"))
	if r.Space() != 12 || r.Available() != 4 {
		t.Fatalf("after write space=%d avail=%d", r.Space(), r.Available())
	}
	r.Reset()
	if r.Available() != 0 {
		t.Fatalf("Reset left %d available", r.Available())
	}
}

func TestCapacityRoundsUp(t *testing.T) {
	if got := New(10).Cap(); got != 16 {
		t.Fatalf("Cap = %d, want 16", got)
	}
	if got := New(0).Cap(); got != 2 {
		t.Fatalf("Cap = %d, want 2", got)
	}
}

func TestWriterDropsOverflow(t *testing.T) {
	r := New(4)
	w := r.Writer()
	n, err := w.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write = %d,%v, want 6,nil", n, err)
	}
	got := make([]byte, 8)
	rn := r.TryRead(got)
	if string(got[:rn]) != "abcd" {
		t.Fatalf("ring kept %q, want %q", got[:rn], "abcd")
	}
}
