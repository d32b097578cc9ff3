// Scripted smoke check of the notification core: every scenario the
// course handout walks through, runnable on the host without the test
// toolchain. Prints [PASS]/[FAIL] per scenario and exits non-zero on any
// failure.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"simcore-go/event"
	"simcore-go/logx"
	"simcore-go/x/linering"
)

type textSink struct{ text string }

func (s *textSink) SetText(v string) { s.text = v }

func quietLogger(cfg logx.Config) *logx.Logger {
	l := logx.New(cfg)
	l.SetConsole(io.Discard)
	l.Init()
	return l
}

// --- individual scenarios (return ok plus a failure note) ---------------------

func scenarioQueueOverflow() (bool, string) {
	b := event.NewBus(event.Config{QueueSize: 4})
	b.Init()
	delivered := 0
	b.Subscribe(event.Tick, func(event.Kind, *event.Payload, any) { delivered++ }, nil)

	for i := 0; i < 4; i++ {
		if !b.Publish(event.Tick, &event.Payload{Tick: uint32(i)}) {
			return false, fmt.Sprintf("publish %d rejected below capacity", i)
		}
	}
	if b.Publish(event.Tick, nil) {
		return false, "fifth publish accepted on a full queue"
	}
	if b.QueueLen() != 4 {
		return false, fmt.Sprintf("queue length %d, want 4", b.QueueLen())
	}
	b.Process()
	if delivered != 4 {
		return false, fmt.Sprintf("delivered %d, want 4", delivered)
	}
	if b.QueueLen() != 0 {
		return false, "queue not drained"
	}
	return true, ""
}

func scenarioResubscribeContext() (bool, string) {
	b := event.NewBus(event.Config{})
	b.Init()
	var seen any
	cb := func(_ event.Kind, _ *event.Payload, user any) { seen = user }
	b.Subscribe(event.Alert, cb, "ctx1")
	b.Subscribe(event.Alert, cb, "ctx2")
	if n := b.SubscriberCount(event.Alert); n != 1 {
		return false, fmt.Sprintf("subscriber count %d, want 1", n)
	}
	b.Publish(event.Alert, nil)
	b.Process()
	if seen != "ctx2" {
		return false, fmt.Sprintf("delivered context %v, want ctx2", seen)
	}
	return true, ""
}

func scenarioLogDropCounting() (bool, string) {
	l := quietLogger(logx.Config{QueueSize: 2})
	l.SetLevel(logx.Warn)
	l.Log(logx.Info, "x") // below threshold: never queued
	l.Log(logx.Warn, "a")
	l.Log(logx.Error, "b")
	l.Log(logx.Error, "c") // queue full: dropped
	if n := l.QueueLen(); n != 2 {
		return false, fmt.Sprintf("queue length %d, want 2", n)
	}
	if n := l.Dropped(); n != 1 {
		return false, fmt.Sprintf("dropped %d, want 1", n)
	}
	return true, ""
}

func scenarioLevelNoneSilences() (bool, string) {
	l := quietLogger(logx.Config{})
	l.SetLevel(logx.None)
	l.Log(logx.Error, "should vanish")
	if n := l.QueueLen(); n != 0 {
		return false, fmt.Sprintf("queue length %d, want 0", n)
	}
	return true, ""
}

func scenarioRollingDisplay() (bool, string) {
	r := linering.New(3, 256)
	for _, line := range []string{"1", "2", "3", "4"} {
		r.Append(line)
	}
	if got := r.Content(); got != "2\n3\n4" {
		return false, fmt.Sprintf("content %q, want 2\\n3\\n4", got)
	}
	return true, ""
}

func scenarioOversizedLineSkipped() (bool, string) {
	r := linering.New(3, 16)
	r.Append("keep")
	r.Append(strings.Repeat("x", 64))
	if got := r.Content(); got != "keep" {
		return false, fmt.Sprintf("content %q, want keep", got)
	}
	return true, ""
}

func scenarioUnsubscribeUnknown() (bool, string) {
	b := event.NewBus(event.Config{})
	b.Init()
	var order []string
	mk := func(name string) event.Callback {
		return func(event.Kind, *event.Payload, any) { order = append(order, name) }
	}
	cbA, cbB, cbC := mk("a"), mk("b"), mk("c")
	b.Subscribe(event.Tick, cbA, nil)
	b.Subscribe(event.Tick, cbB, nil)
	b.Subscribe(event.Tick, cbC, nil)

	stranger := func(event.Kind, *event.Payload, any) {}
	if b.Unsubscribe(event.Tick, stranger) {
		return false, "unsubscribe of an unknown callback succeeded"
	}
	if !b.Unsubscribe(event.Tick, cbB) {
		return false, "unsubscribe of a registered callback failed"
	}
	b.Publish(event.Tick, nil)
	b.Process()
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		return false, fmt.Sprintf("delivery order %v, want [a c]", order)
	}
	return true, ""
}

func scenarioDeinitReinit() (bool, string) {
	b := event.NewBus(event.Config{})
	b.Init()
	b.Subscribe(event.Tick, func(event.Kind, *event.Payload, any) {}, nil)
	b.Publish(event.Tick, nil)
	b.Deinit()
	b.Init()
	if n := b.SubscriberCount(event.Tick); n != 0 {
		return false, fmt.Sprintf("subscribers survived deinit: %d", n)
	}
	if n := b.QueueLen(); n != 0 {
		return false, fmt.Sprintf("queued events survived deinit: %d", n)
	}
	// No subscribers: success without queueing.
	if !b.Publish(event.Tick, nil) {
		return false, "publish after re-init failed"
	}
	if n := b.QueueLen(); n != 0 {
		return false, "publish without subscribers queued an event"
	}
	return true, ""
}

func scenarioPublishImmediate() (bool, string) {
	b := event.NewBus(event.Config{})
	b.Init()
	calls := 0
	b.Subscribe(event.LEDChange, func(event.Kind, *event.Payload, any) { calls++ }, nil)
	b.PublishImmediate(event.LEDChange, nil)
	if calls != 1 {
		return false, fmt.Sprintf("immediate delivery count %d, want 1", calls)
	}
	if n := b.QueueLen(); n != 0 {
		return false, "immediate publish touched the queue"
	}
	return true, ""
}

func scenarioMessageTruncation() (bool, string) {
	l := quietLogger(logx.Config{MaxMessage: 16})
	sink := &textSink{}
	l.AttachDisplay(sink, 4)
	l.Log(logx.Info, "%s", strings.Repeat("z", 64))
	l.Flush()
	// 16 payload bytes plus the "[I] " prefix.
	want := "[I] " + strings.Repeat("z", 16)
	if sink.text != want {
		return false, fmt.Sprintf("display %q, want %q", sink.text, want)
	}
	return true, ""
}

// --- main ---------------------------------------------------------------------

func main() {
	scenarios := []struct {
		name string
		fn   func() (bool, string)
	}{
		{"queue_overflow", scenarioQueueOverflow},
		{"resubscribe_context", scenarioResubscribeContext},
		{"log_drop_counting", scenarioLogDropCounting},
		{"level_none_silences", scenarioLevelNoneSilences},
		{"rolling_display", scenarioRollingDisplay},
		{"oversized_line_skipped", scenarioOversizedLineSkipped},
		{"unsubscribe_unknown", scenarioUnsubscribeUnknown},
		{"deinit_reinit", scenarioDeinitReinit},
		{"publish_immediate", scenarioPublishImmediate},
		{"message_truncation", scenarioMessageTruncation},
	}

	passed, failed := 0, 0
	fmt.Println("== notification core self-test ==")
	for _, sc := range scenarios {
		ok, why := sc.fn()
		if ok {
			fmt.Printf("[PASS] %s\n", sc.name)
			passed++
		} else {
			fmt.Printf("[FAIL] %s: %s\n", sc.name, why)
			failed++
		}
	}
	fmt.Printf("== done: %d passed, %d failed ==\n", passed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
