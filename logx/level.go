package logx

// Level orders log severity; lower values are more severe. None disables:
// a message at None never passes the filter, and a threshold of None
// silences everything.
type Level uint8

const (
	None Level = iota
	Error
	Warn
	Info
	Debug
	Verbose
)

var levelNames = [...]string{"none", "error", "warn", "info", "debug", "verbose"}

// Short console prefixes, indexed by level.
var prefixes = [...]string{"", "[E] ", "[W] ", "[I] ", "[D] ", "[V] "}

// ANSI colour per level for the immediate console echo.
var colors = [...]string{
	"",
	"\033[31m", // error: red
	"\033[33m", // warn: yellow
	"\033[32m", // info: green
	"\033[36m", // debug: cyan
	"\033[37m", // verbose: white
}

const colorReset = "\033[0m"

func (lv Level) String() string {
	if int(lv) < len(levelNames) {
		return levelNames[lv]
	}
	return "invalid"
}

// Valid reports whether lv is a defined level.
func (lv Level) Valid() bool { return lv <= Verbose }

// ParseLevel resolves a level by its string name.
func ParseLevel(s string) (Level, bool) {
	for i, name := range levelNames {
		if name == s {
			return Level(i), true
		}
	}
	return None, false
}

// Target selects output sinks as a bitmask.
type Target uint8

const (
	// TargetConsole echoes entries immediately as they are logged.
	TargetConsole Target = 1 << iota
	// TargetDisplay feeds the rolling display panel during Process.
	TargetDisplay
	// TargetStream writes prefixed lines to the attached pipe during
	// Process.
	TargetStream
)

// TargetNone routes nowhere.
const TargetNone Target = 0

// Has reports whether all bits of f are set in t.
func (t Target) Has(f Target) bool { return t&f == f }

func (t Target) String() string {
	if t == TargetNone {
		return "none"
	}
	s := ""
	for _, part := range []struct {
		bit  Target
		name string
	}{
		{TargetConsole, "console"},
		{TargetDisplay, "display"},
		{TargetStream, "stream"},
	} {
		if t.Has(part.bit) {
			if s != "" {
				s += "|"
			}
			s += part.name
		}
	}
	return s
}

// ParseTarget resolves a single target bit by name.
func ParseTarget(s string) (Target, bool) {
	switch s {
	case "console":
		return TargetConsole, true
	case "display":
		return TargetDisplay, true
	case "stream":
		return TargetStream, true
	case "none":
		return TargetNone, true
	}
	return TargetNone, false
}
