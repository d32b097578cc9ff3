package linering

import "testing"

func TestAppendEvictsOldestAtLineBound(t *testing.T) {
	r := New(3, 256)
	for _, s := range []string{"1", "2", "3", "4"} {
		r.Append(s)
	}
	if got, want := r.Content(), "2\n3\n4"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
	if got, want := r.Lines(), 3; got != want {
		t.Fatalf("Lines = %d, want %d", got, want)
	}
}

func TestAppendEvictsForBytes(t *testing.T) {
	// 10 bytes total: "aaaa\nbbbb" is 9, a third entry must evict.
	r := New(10, 10)
	r.Append("aaaa")
	r.Append("bbbb")
	r.Append("cccc")
	if got, want := r.Content(), "bbbb\ncccc"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
}

func TestOversizedLineSkippedSilently(t *testing.T) {
	r := New(5, 8)
	r.Append("ok")
	r.Append("123456789") // longer than the whole ring
	if got, want := r.Content(), "ok"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
	if got, want := r.Lines(), 1; got != want {
		t.Fatalf("Lines = %d, want %d", got, want)
	}
}

func TestEvictionCrossesAllContent(t *testing.T) {
	// Newcomer fits alone but only after everything else goes.
	r := New(5, 8)
	r.Append("abc")
	r.Append("def")
	r.Append("12345678")
	if got, want := r.Content(), "12345678"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
}

func TestEmbeddedNewlinesCountAsLines(t *testing.T) {
	r := New(3, 64)
	r.Append("a\nb")
	r.Append("c")
	if got, want := r.Lines(), 3; got != want {
		t.Fatalf("Lines = %d, want %d", got, want)
	}
	r.Append("d")
	if got, want := r.Content(), "b\nc\nd"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
}

func TestSingleLineBound(t *testing.T) {
	r := New(1, 32)
	r.Append("first")
	r.Append("second")
	if got, want := r.Content(), "second"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
}

func TestClear(t *testing.T) {
	r := New(4, 64)
	r.Append("x")
	r.Clear()
	if r.Content() != "" || r.Lines() != 0 || r.Len() != 0 {
		t.Fatalf("Clear left content=%q lines=%d len=%d", r.Content(), r.Lines(), r.Len())
	}
	r.Append("y")
	if got, want := r.Content(), "y"; got != want {
		t.Fatalf("Content = %q, want %q", got, want)
	}
}
