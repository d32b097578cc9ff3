package logx

import (
	"bytes"
	"strings"
	"testing"
)

// fakeView records every SetText pushed to a display sink.
type fakeView struct {
	texts []string
}

func (v *fakeView) SetText(s string) { v.texts = append(v.texts, s) }

func (v *fakeView) last() string {
	if len(v.texts) == 0 {
		return ""
	}
	return v.texts[len(v.texts)-1]
}

func newTestLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	l := New(cfg)
	var console bytes.Buffer
	l.SetConsole(&console)
	l.Init()
	return l, &console
}

func TestFilterByThreshold(t *testing.T) {
	l, console := newTestLogger(t, Config{})
	l.SetLevel(Warn)

	l.Infof("filtered out")
	l.Debugf("also filtered")
	if console.Len() != 0 {
		t.Fatalf("console got %q, want nothing", console.String())
	}
	if got := l.QueueLen(); got != 0 {
		t.Fatalf("QueueLen = %d, want 0 (filter precedes queueing)", got)
	}

	l.Errorf("kept")
	if !strings.Contains(console.String(), "[E] kept") {
		t.Fatalf("console = %q, want error echo", console.String())
	}
	if got := l.QueueLen(); got != 1 {
		t.Fatalf("QueueLen = %d, want 1", got)
	}
}

func TestNoneSilences(t *testing.T) {
	l, console := newTestLogger(t, Config{})

	l.Log(None, "never emitted")
	if console.Len() != 0 {
		t.Fatalf("console got %q for a None message", console.String())
	}

	l.SetLevel(None)
	l.Errorf("still silenced")
	if console.Len() != 0 || l.QueueLen() != 0 {
		t.Fatalf("None threshold leaked: console=%q queue=%d", console.String(), l.QueueLen())
	}
}

func TestConsoleEchoColours(t *testing.T) {
	l, console := newTestLogger(t, Config{})
	l.Errorf("boom")
	if got, want := console.String(), "\033[31m[E] boom\033[0m\n"; got != want {
		t.Fatalf("console = %q, want %q", got, want)
	}

	console.Reset()
	l.SetLevel(Verbose)
	l.Verbosef("chatty")
	if got, want := console.String(), "\033[37m[V] chatty\033[0m\n"; got != want {
		t.Fatalf("console = %q, want %q", got, want)
	}
}

func TestUninitializedWritesDirect(t *testing.T) {
	l := New(Config{})
	var console bytes.Buffer
	l.SetConsole(&console)

	l.Warnf("early %d", 42)
	if got, want := console.String(), "[W] early 42\n"; got != want {
		t.Fatalf("console = %q, want %q (uncoloured direct)", got, want)
	}
	if got := l.QueueLen(); got != 0 {
		t.Fatalf("QueueLen = %d, want 0 (nothing queued pre-init)", got)
	}
}

func TestQueueDropCounter(t *testing.T) {
	l, _ := newTestLogger(t, Config{QueueSize: 2})
	l.SetLevel(Warn)

	l.Errorf("one")
	l.Warnf("two")
	l.Errorf("three") // queue full, dropped
	l.Infof("filtered, not dropped")

	if got, want := l.QueueLen(), 2; got != want {
		t.Fatalf("QueueLen = %d, want %d", got, want)
	}
	if got, want := l.Dropped(), 1; got != want {
		t.Fatalf("Dropped = %d, want %d", got, want)
	}
}

func TestMessageTruncation(t *testing.T) {
	l, console := newTestLogger(t, Config{MaxMessage: 16})
	l.Infof("%s", strings.Repeat("x", 40))

	line := console.String()
	// colour + prefix + 16 payload bytes + reset + newline
	want := "\033[32m[I] " + strings.Repeat("x", 16) + "\033[0m\n"
	if line != want {
		t.Fatalf("console = %q, want %q", line, want)
	}
}

func TestLogTagPrefix(t *testing.T) {
	l, console := newTestLogger(t, Config{})
	l.LogTag(Info, "NET", "link %s", "up")
	if !strings.Contains(console.String(), "[I] [NET] link up") {
		t.Fatalf("console = %q, want tagged message", console.String())
	}
}

func TestTagCountsAgainstBound(t *testing.T) {
	l, _ := newTestLogger(t, Config{MaxMessage: 10})
	view := &fakeView{}
	l.AttachDisplay(view, 4)

	l.LogTag(Info, "LONGTAG", "abcdefgh")
	l.Process()
	// "[LONGTAG] " alone exhausts the 10-byte budget.
	if got, want := view.last(), "[I] [LONGTAG] "; got != want {
		t.Fatalf("display = %q, want %q", got, want)
	}
}

func TestProcessFansOutToDisplay(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	view := &fakeView{}
	l.AttachDisplay(view, 3)

	l.Infof("a")
	l.Warnf("b")
	if len(view.texts) != 0 {
		t.Fatal("display updated before Process")
	}
	l.Process()
	if got, want := view.last(), "[I] a\n[W] b"; got != want {
		t.Fatalf("display = %q, want %q", got, want)
	}
	if got := l.QueueLen(); got != 0 {
		t.Fatalf("QueueLen after Process = %d, want 0", got)
	}
}

func TestDisplayRollsOldestOut(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	view := &fakeView{}
	l.AttachDisplay(view, 3)

	for _, m := range []string{"1", "2", "3", "4"} {
		l.Infof("%s", m)
	}
	l.Process()
	if got, want := view.last(), "[I] 2\n[I] 3\n[I] 4"; got != want {
		t.Fatalf("display = %q, want %q", got, want)
	}
}

func TestDetachDisplayStopsRouting(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	view := &fakeView{}
	l.AttachDisplay(view, 3)
	if !l.Targets().Has(TargetDisplay) {
		t.Fatal("attach did not set the display bit")
	}

	l.DetachDisplay()
	if l.Targets().Has(TargetDisplay) {
		t.Fatal("detach left the display bit set")
	}
	l.Infof("after detach")
	l.Process()
	if len(view.texts) != 0 {
		t.Fatalf("display got %v after detach", view.texts)
	}
}

func TestStreamSink(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	var pipe bytes.Buffer
	l.AttachStream(&pipe)

	l.Errorf("fault %d", 5)
	l.Infof("note")
	l.Process()
	if got, want := pipe.String(), "[E] fault 5\n[I] note\n"; got != want {
		t.Fatalf("pipe = %q, want %q", got, want)
	}
}

func TestQueueDrainedWithoutDeferredTargets(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	l.Infof("x")
	l.Infof("y")
	if got := l.QueueLen(); got != 2 {
		t.Fatalf("QueueLen = %d, want 2", got)
	}
	l.Process()
	if got := l.QueueLen(); got != 0 {
		t.Fatalf("QueueLen = %d, want 0 (drained with no sinks)", got)
	}
}

func TestDeinitDrainsToSinks(t *testing.T) {
	l, _ := newTestLogger(t, Config{})
	view := &fakeView{}
	l.AttachDisplay(view, 5)

	l.Infof("pending")
	l.Deinit()
	if got, want := view.last(), "[I] pending"; got != want {
		t.Fatalf("display = %q, want %q (deinit drains)", got, want)
	}
	if l.Initialized() {
		t.Fatal("Initialized after Deinit")
	}
}

func TestReinitClearsCountsAndContent(t *testing.T) {
	l, _ := newTestLogger(t, Config{QueueSize: 1})
	view := &fakeView{}
	l.AttachDisplay(view, 3)
	l.Infof("one")
	l.Infof("two") // dropped
	if got := l.Dropped(); got != 1 {
		t.Fatalf("Dropped = %d, want 1", got)
	}

	l.Deinit()
	l.Init()
	if got := l.Dropped(); got != 0 {
		t.Fatalf("Dropped after re-Init = %d, want 0", got)
	}
	l.Infof("fresh")
	l.Process()
	if got, want := view.last(), "[I] fresh"; got != want {
		t.Fatalf("display = %q, want %q (content cleared on Init)", got, want)
	}
}

func TestSettersWorkUninitialized(t *testing.T) {
	l := New(Config{})
	l.SetLevel(Debug)
	l.SetTargets(TargetNone)
	if l.Level() != Debug || l.Targets() != TargetNone {
		t.Fatalf("setters ignored pre-init: level=%v targets=%v", l.Level(), l.Targets())
	}
}

func TestParseLevelAndTarget(t *testing.T) {
	if lv, ok := ParseLevel("debug"); !ok || lv != Debug {
		t.Fatalf("ParseLevel = %v,%v, want Debug,true", lv, ok)
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatal("ParseLevel accepted nonsense")
	}
	if tg, ok := ParseTarget("stream"); !ok || tg != TargetStream {
		t.Fatalf("ParseTarget = %v,%v, want TargetStream,true", tg, ok)
	}
	mask := TargetConsole | TargetDisplay
	if got, want := mask.String(), "console|display"; got != want {
		t.Fatalf("Target.String = %q, want %q", got, want)
	}
}
