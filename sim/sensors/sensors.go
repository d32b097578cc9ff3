// Package sensors simulates the course board's analog and motion
// sources: a bank of ADC channels (potentiometer, light, aux, internal
// temperature), a synthesized IMU, and an AHT20 climate rig on an
// internal simulated I²C fabric. All sources are stepped by the caller.
package sensors

import (
	"simcore-go/x/mathx"
)

// Channel identifies one ADC input.
type Channel uint8

const (
	ChanPot Channel = iota
	ChanLight
	ChanAux
	ChanTemp

	// ChannelCount bounds the valid Channel range.
	ChannelCount
)

var channelNames = [...]string{"pot", "light", "aux", "temp"}

func (c Channel) String() string {
	if c < ChannelCount {
		return channelNames[c]
	}
	return "invalid"
}

// Valid reports whether c names a defined channel.
func (c Channel) Valid() bool { return c < ChannelCount }

// ParseChannel resolves a channel by its string name.
func ParseChannel(s string) (Channel, bool) {
	for i, name := range channelNames {
		if name == s {
			return Channel(i), true
		}
	}
	return ChannelCount, false
}

// Config sizes the ADC bank.
type Config struct {
	// ResolutionBits is the ADC width, clamped to [8, 16]. Default 12.
	ResolutionBits int
	// VrefMillivolts scales Millivolts. Default 3300.
	VrefMillivolts uint16
}

// Bank is a set of simulated ADC channels. Values move instantly via
// SetRaw or slew toward a target across Step calls.
type Bank struct {
	maxRaw uint16
	vref   uint16

	raw     [ChannelCount]uint16
	target  [ChannelCount]uint16
	slewing [ChannelCount]bool
}

// NewBank returns a Bank with every channel at zero.
func NewBank(cfg Config) *Bank {
	bits := cfg.ResolutionBits
	if bits == 0 {
		bits = 12
	}
	bits = mathx.Clamp(bits, 8, 16)
	vref := cfg.VrefMillivolts
	if vref == 0 {
		vref = 3300
	}
	var maxRaw uint16
	if bits == 16 {
		maxRaw = 0xFFFF
	} else {
		maxRaw = uint16(1<<bits) - 1
	}
	return &Bank{maxRaw: maxRaw, vref: vref}
}

// MaxRaw returns the full-scale raw value.
func (b *Bank) MaxRaw() uint16 { return b.maxRaw }

// SetRaw pins ch to v (clamped to full scale), cancelling any slew.
// Invalid channels report false.
func (b *Bank) SetRaw(ch Channel, v uint16) bool {
	if !ch.Valid() {
		return false
	}
	b.raw[ch] = mathx.Min(v, b.maxRaw)
	b.slewing[ch] = false
	return true
}

// SetTarget starts ch slewing toward v (clamped) across Step calls.
func (b *Bank) SetTarget(ch Channel, v uint16) bool {
	if !ch.Valid() {
		return false
	}
	b.target[ch] = mathx.Min(v, b.maxRaw)
	b.slewing[ch] = b.target[ch] != b.raw[ch]
	return true
}

// slewQ16 moves a quarter of the remaining distance per Step.
const slewQ16 = 16384

// Step advances every slewing channel one increment toward its target,
// snapping when the remaining distance rounds to nothing.
func (b *Bank) Step() {
	for ch := Channel(0); ch < ChannelCount; ch++ {
		if !b.slewing[ch] {
			continue
		}
		next := mathx.LerpU16(b.raw[ch], b.target[ch], slewQ16)
		if next == b.raw[ch] {
			next = b.target[ch]
		}
		b.raw[ch] = next
		if next == b.target[ch] {
			b.slewing[ch] = false
		}
	}
}

// Raw returns the current sample of ch; invalid channels read zero.
func (b *Bank) Raw(ch Channel) uint16 {
	if !ch.Valid() {
		return 0
	}
	return b.raw[ch]
}

// Percent maps the current sample of ch to 0..100.
func (b *Bank) Percent(ch Channel) uint8 {
	return uint8(mathx.MapU16(b.Raw(ch), 0, b.maxRaw, 0, 100))
}

// Millivolts maps the current sample of ch to 0..vref.
func (b *Bank) Millivolts(ch Channel) uint16 {
	return mathx.MapU16(b.Raw(ch), 0, b.maxRaw, 0, b.vref)
}
