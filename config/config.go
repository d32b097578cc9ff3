// Package config resolves named simulator profiles from embedded JSON.
// A profile sizes the notification core and the telemetry schedule; the
// lookup is overridable so tests and front-ends can inject their own.
package config

import (
	"errors"

	"simcore-go/event"
	"simcore-go/logx"
	"simcore-go/services/telemetry"
	"simcore-go/x/strx"

	"github.com/andreyvit/tinyjson"
)

// DefaultProfile is used when no profile name is given.
const DefaultProfile = "classroom"

// EmbeddedProfileLookup resolves a profile name to raw JSON. Override it
// to source profiles from somewhere other than the embedded set.
var EmbeddedProfileLookup = func(name string) ([]byte, bool) {
	b, ok := embeddedProfiles[name]
	return b, ok
}

// Profile is one named simulator setup.
type Profile struct {
	Name string

	// notification core sizing
	EventQueue     int
	MaxSubscribers int
	LogQueue       int
	MaxMessage     int
	DisplayLines   int
	LogLevel       string

	// telemetry schedule and thresholds
	TickPeriodMs    int64
	SensorPeriodMs  int64
	MotionPeriodMs  int64
	OverTempDeciC   int32
	LowLightPercent uint8
}

// Load resolves name (empty selects the default profile) against the
// profile lookup and decodes it.
func Load(name string) (Profile, error) {
	name = strx.Coalesce(name, DefaultProfile)
	raw, ok := EmbeddedProfileLookup(name)
	if !ok || len(raw) == 0 {
		return Profile{}, errors.New("config: no profile named " + name)
	}

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return Profile{}, errors.New("config: profile " + name + " is not a JSON object")
	}

	p := Profile{Name: name}
	p.EventQueue = intField(m, "event_queue")
	p.MaxSubscribers = intField(m, "max_subscribers")
	p.LogQueue = intField(m, "log_queue")
	p.MaxMessage = intField(m, "max_message")
	p.DisplayLines = intField(m, "display_lines")
	p.LogLevel, _ = m["log_level"].(string)
	p.TickPeriodMs = int64(intField(m, "tick_period_ms"))
	p.SensorPeriodMs = int64(intField(m, "sensor_period_ms"))
	p.MotionPeriodMs = int64(intField(m, "motion_period_ms"))
	p.OverTempDeciC = int32(intField(m, "over_temp_decic"))
	p.LowLightPercent = uint8(intField(m, "low_light_pct"))
	return p, nil
}

// intField reads a numeric JSON field, zero when absent or non-numeric.
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// BusConfig sizes the event bus; zero fields fall to the bus defaults.
func (p Profile) BusConfig() event.Config {
	return event.Config{
		QueueSize:      p.EventQueue,
		MaxSubscribers: p.MaxSubscribers,
	}
}

// LogConfig sizes the logger; zero fields fall to the logger defaults.
func (p Profile) LogConfig() logx.Config {
	return logx.Config{
		QueueSize:  p.LogQueue,
		MaxMessage: p.MaxMessage,
	}
}

// TelemetryConfig builds the producer schedule; zero fields fall to the
// telemetry defaults.
func (p Profile) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		TickPeriodMs:   p.TickPeriodMs,
		SensorPeriodMs: p.SensorPeriodMs,
		MotionPeriodMs: p.MotionPeriodMs,
		OverTempDeciC:  p.OverTempDeciC,
		LowLightPct:    p.LowLightPercent,
	}
}

// Level resolves the profile's log level, Info when unset or unknown.
func (p Profile) Level() logx.Level {
	if lv, ok := logx.ParseLevel(p.LogLevel); ok {
		return lv
	}
	return logx.Info
}
