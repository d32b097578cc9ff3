// Package logx is the simulator's bounded logging core. Messages are
// filtered by severity, formatted eagerly into fixed-size storage and
// routed by a target bitmask: an immediate colour-coded console echo,
// plus deferred fan-out to a rolling display panel and a byte pipe,
// drained by the host loop via Process or Flush.
//
// A Logger is confined to a single cooperative execution context, like
// the event bus it accompanies.
package logx

import (
	"io"
	"os"

	"simcore-go/x/fmtx"
	"simcore-go/x/linering"
	"simcore-go/x/ringbuf"
)

// Defaults for Config fields left at zero.
const (
	DefaultQueueSize    = 32
	DefaultMaxMessage   = 128
	DefaultDisplayLines = 10
)

// prefixSlack covers the level prefix and line joining when sizing the
// display ring from the message bound.
const prefixSlack = 8

// Config sizes a Logger. Fields below 1 fall back to the defaults.
type Config struct {
	QueueSize  int // pending entries
	MaxMessage int // formatted message bound in bytes
}

// entry is one queued log line.
type entry struct {
	level Level
	msg   string
}

// Logger owns the severity filter, the bounded entry queue and the sink
// routing state. Create with New, then Init; SetLevel and SetTargets work
// in any lifecycle state.
type Logger struct {
	cfg     Config
	init    bool
	level   Level
	targets Target
	dropped int

	console io.Writer
	scratch *fmtx.Builder
	queue   *ringbuf.Buffer[entry]

	display TextView
	ring    *linering.Ring
	stream  io.Writer
}

// TextView is a display sink that can replace its whole text content,
// such as a TUI viewport or a GUI label.
type TextView interface {
	SetText(s string)
}

// New returns an uninitialized Logger sized by cfg, echoing to stdout at
// the Info threshold.
func New(cfg Config) *Logger {
	cfg.QueueSize = orDefault(cfg.QueueSize, DefaultQueueSize)
	cfg.MaxMessage = orDefault(cfg.MaxMessage, DefaultMaxMessage)
	return &Logger{
		cfg:     cfg,
		level:   Info,
		targets: TargetConsole,
		console: os.Stdout,
		scratch: fmtx.NewBuilder(cfg.MaxMessage),
		queue:   ringbuf.New[entry](cfg.QueueSize),
	}
}

// Init makes the logger operational, resetting the queue, the drop
// counter and any rolling display content. Re-initializing is a no-op.
func (l *Logger) Init() {
	if l.init {
		return
	}
	l.queue.Clear()
	l.dropped = 0
	if l.ring != nil {
		l.ring.Clear()
	}
	l.init = true
}

// Deinit drains pending entries to the deferred sinks, then returns the
// logger to the uninitialized state. Calling it when uninitialized is a
// no-op.
func (l *Logger) Deinit() {
	if !l.init {
		return
	}
	l.Process()
	l.queue.Clear()
	l.init = false
}

// Initialized reports the lifecycle state.
func (l *Logger) Initialized() bool { return l.init }

// SetLevel sets the severity threshold. Messages less severe than lv are
// filtered; None silences everything.
func (l *Logger) SetLevel(lv Level) { l.level = lv }

// Level returns the current severity threshold.
func (l *Logger) Level() Level { return l.level }

// SetTargets replaces the output routing mask.
func (l *Logger) SetTargets(t Target) { l.targets = t }

// Targets returns the current routing mask.
func (l *Logger) Targets() Target { return l.targets }

// SetConsole redirects the immediate echo, primarily for tests and
// front-ends that own the terminal. A nil writer is ignored.
func (l *Logger) SetConsole(w io.Writer) {
	if w != nil {
		l.console = w
	}
}

// Log filters, formats and routes one message. The severity filter runs
// before any formatting work. On an uninitialized logger the formatted
// line goes straight to the console, uncoloured.
func (l *Logger) Log(lv Level, format string, args ...any) {
	if !l.accepts(lv) {
		return
	}
	l.emit(lv, "", format, args...)
}

// LogTag is Log with a "[TAG] " prefix inside the bounded message.
func (l *Logger) LogTag(lv Level, tag, format string, args ...any) {
	if !l.accepts(lv) {
		return
	}
	l.emit(lv, tag, format, args...)
}

// Errorf logs at Error severity.
func (l *Logger) Errorf(format string, args ...any) { l.Log(Error, format, args...) }

// Warnf logs at Warn severity.
func (l *Logger) Warnf(format string, args ...any) { l.Log(Warn, format, args...) }

// Infof logs at Info severity.
func (l *Logger) Infof(format string, args ...any) { l.Log(Info, format, args...) }

// Debugf logs at Debug severity.
func (l *Logger) Debugf(format string, args ...any) { l.Log(Debug, format, args...) }

// Verbosef logs at Verbose severity.
func (l *Logger) Verbosef(format string, args ...any) { l.Log(Verbose, format, args...) }

func (l *Logger) accepts(lv Level) bool {
	return lv != None && lv <= l.level
}

func (l *Logger) emit(lv Level, tag, format string, args ...any) {
	l.scratch.Reset()
	if tag != "" {
		l.scratch.WriteByte('[')
		l.scratch.WriteString(tag)
		l.scratch.WriteString("] ")
	}
	l.scratch.Appendf(format, args...)
	msg := l.scratch.String()

	if !l.init {
		io.WriteString(l.console, prefixes[lv])
		io.WriteString(l.console, msg)
		io.WriteString(l.console, "\n")
		return
	}

	if l.targets.Has(TargetConsole) {
		l.echo(lv, msg)
	}
	// The queue feeds the deferred sinks; entries are pushed even while
	// no deferred target is active, matching the drop accounting.
	if !l.queue.Push(entry{level: lv, msg: msg}) {
		l.dropped++
	}
}

func (l *Logger) echo(lv Level, msg string) {
	io.WriteString(l.console, colors[lv])
	io.WriteString(l.console, prefixes[lv])
	io.WriteString(l.console, msg)
	io.WriteString(l.console, colorReset)
	io.WriteString(l.console, "\n")
}

// Process drains queued entries to the active deferred sinks. Entries are
// popped even when no deferred target is active. It is a no-op on an
// uninitialized logger.
func (l *Logger) Process() {
	if !l.init {
		return
	}
	for {
		e, ok := l.queue.Pop()
		if !ok {
			return
		}
		if l.targets.Has(TargetDisplay) && l.display != nil {
			l.ring.Append(prefixes[e.level] + e.msg)
			l.display.SetText(l.ring.Content())
		}
		if l.targets.Has(TargetStream) && l.stream != nil {
			io.WriteString(l.stream, prefixes[e.level])
			io.WriteString(l.stream, e.msg)
			io.WriteString(l.stream, "\n")
		}
	}
}

// Flush drains pending entries; it is the name host loops conventionally
// call at iteration end.
func (l *Logger) Flush() { l.Process() }

// QueueLen returns the number of entries awaiting fan-out.
func (l *Logger) QueueLen() int { return l.queue.Len() }

// Dropped returns how many accepted entries were lost to a full queue.
func (l *Logger) Dropped() int { return l.dropped }

// AttachDisplay routes deferred output to view, keeping at most maxLines
// lines. Previous rolling content is discarded. maxLines below 1 falls
// back to the default. A nil view detaches.
func (l *Logger) AttachDisplay(view TextView, maxLines int) {
	if view == nil {
		l.DetachDisplay()
		return
	}
	if maxLines < 1 {
		maxLines = DefaultDisplayLines
	}
	l.display = view
	l.ring = linering.New(maxLines, maxLines*(l.cfg.MaxMessage+prefixSlack))
	l.targets |= TargetDisplay
}

// DetachDisplay drops the rolling content and clears the display routing
// bit.
func (l *Logger) DetachDisplay() {
	l.display = nil
	l.ring = nil
	l.targets &^= TargetDisplay
}

// AttachStream routes deferred output as prefixed lines into w, the
// simulator's stand-in for an inter-core pipe. A nil writer detaches.
func (l *Logger) AttachStream(w io.Writer) {
	if w == nil {
		l.DetachStream()
		return
	}
	l.stream = w
	l.targets |= TargetStream
}

// DetachStream stops routing to the pipe and clears its routing bit.
func (l *Logger) DetachStream() {
	l.stream = nil
	l.targets &^= TargetStream
}

func orDefault(v, def int) int {
	if v < 1 {
		return def
	}
	return v
}
