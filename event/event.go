// Package event implements the simulator's asynchronous notification
// core: typed events published into a bounded queue and delivered to
// registered subscribers by a caller-driven pump.
//
// A Bus is confined to a single cooperative execution context. Nothing
// here locks, blocks or spawns; a multi-threaded host must serialize
// access externally.
package event

// Kind identifies one event stream.
type Kind uint8

const (
	Tick Kind = iota
	SensorUpdate
	MotionUpdate
	ButtonPress
	LEDChange
	Alert

	// KindCount bounds the valid Kind range.
	KindCount
)

var kindNames = [...]string{
	"tick",
	"sensor_update",
	"motion_update",
	"button_press",
	"led_change",
	"alert",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k names a defined event stream.
func (k Kind) Valid() bool { return k < KindCount }

// ParseKind resolves a kind by its string name.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return KindCount, false
}

// Callback receives a delivered event. p is nil when the publisher
// attached no payload; user is the value given at subscribe time.
type Callback func(k Kind, p *Payload, user any)

// Payload is a fixed-size union of per-kind event data. Exactly one field
// is meaningful for a given Kind; the whole struct is copied by value
// into the queue, so publishers keep ownership of nothing.
type Payload struct {
	Tick   uint32
	Sensor SensorData
	Motion MotionData
	Button ButtonData
	LED    LEDData
	Alert  AlertData
}

// SensorData carries one ADC channel sample.
type SensorData struct {
	Channel    uint8
	Raw        uint16
	Percent    uint8
	Millivolts uint16
}

// MotionData carries one IMU sample in raw sensor units.
type MotionData struct {
	AccelX, AccelY, AccelZ int16
	GyroX, GyroY, GyroZ    int16
}

// ButtonData carries a button edge.
type ButtonData struct {
	Button  uint8
	Pressed bool
}

// LEDData carries an LED state change.
type LEDData struct {
	LED uint8
	On  bool
}

// AlertData carries a producer-defined alert code and measurement.
type AlertData struct {
	Code  uint8
	Value int32
}

// Defaults for Config fields left at zero.
const (
	DefaultQueueSize      = 32
	DefaultMaxSubscribers = 8
)

// Config sizes a Bus. Fields below 1 fall back to the defaults.
type Config struct {
	QueueSize      int // pending event entries
	MaxSubscribers int // per-kind subscriber bound
}

func orDefault(v, def int) int {
	if v < 1 {
		return def
	}
	return v
}
