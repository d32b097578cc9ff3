// Package gpio simulates the course board's front panel: three LEDs and
// two momentary buttons. Buttons report edges through per-button
// handlers with optional debounce; LED changes can be observed the same
// way. Everything runs in the caller's execution context.
package gpio

// Board geometry.
const (
	NumLEDs    = 3
	NumButtons = 2
)

// Edge selects which button transitions fire the handler.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// ButtonHandler observes a button transition. pressed is the new level.
type ButtonHandler func(button uint8, pressed bool)

// LEDHandler observes an LED state change.
type LEDHandler func(led uint8, on bool)

type button struct {
	pressed    bool
	edge       Edge
	handler    ButtonHandler
	debounceMs int64
	lastFireMs int64
}

// Board holds the simulated panel state.
type Board struct {
	leds    [NumLEDs]bool
	buttons [NumButtons]button
	onLED   LEDHandler
}

// NewBoard returns a panel with all LEDs off and all buttons released.
func NewBoard() *Board { return &Board{} }

// ---- LEDs -------------------------------------------------------------------

// SetLED drives LED i. Out-of-range indices report false. The handler
// fires only on an actual change.
func (b *Board) SetLED(i int, on bool) bool {
	if i < 0 || i >= NumLEDs {
		return false
	}
	if b.leds[i] == on {
		return true
	}
	b.leds[i] = on
	if b.onLED != nil {
		b.onLED(uint8(i), on)
	}
	return true
}

// ToggleLED inverts LED i, reporting false on a bad index.
func (b *Board) ToggleLED(i int) bool {
	if i < 0 || i >= NumLEDs {
		return false
	}
	return b.SetLED(i, !b.leds[i])
}

// LED returns the current level of LED i; out of range reads as off.
func (b *Board) LED(i int) bool {
	if i < 0 || i >= NumLEDs {
		return false
	}
	return b.leds[i]
}

// OnLED registers the LED change observer. A nil handler detaches.
func (b *Board) OnLED(h LEDHandler) { b.onLED = h }

// ---- Buttons ----------------------------------------------------------------

// OnButton arms button i to call h on the configured edges, suppressing
// repeats closer together than debounceMs. EdgeNone or a nil handler
// disarms. Out-of-range indices report false.
func (b *Board) OnButton(i int, edge Edge, debounceMs int64, h ButtonHandler) bool {
	if i < 0 || i >= NumButtons {
		return false
	}
	if h == nil {
		edge = EdgeNone
	}
	b.buttons[i].edge = edge
	b.buttons[i].handler = h
	b.buttons[i].debounceMs = debounceMs
	b.buttons[i].lastFireMs = 0
	return true
}

// SetButton drives button i to pressed at time nowMs, firing the armed
// handler when the transition matches its edge and clears debounce.
// Repeating the current level is a no-op.
func (b *Board) SetButton(i int, pressed bool, nowMs int64) bool {
	if i < 0 || i >= NumButtons {
		return false
	}
	btn := &b.buttons[i]
	if btn.pressed == pressed {
		return true
	}
	btn.pressed = pressed

	if btn.handler == nil || !edgeWanted(btn.edge, pressed) {
		return true
	}
	if btn.debounceMs > 0 && btn.lastFireMs != 0 && nowMs-btn.lastFireMs < btn.debounceMs {
		return true
	}
	btn.lastFireMs = nowMs
	btn.handler(uint8(i), pressed)
	return true
}

// Button returns the current level of button i; out of range reads as
// released.
func (b *Board) Button(i int) bool {
	if i < 0 || i >= NumButtons {
		return false
	}
	return b.buttons[i].pressed
}

func edgeWanted(cfg Edge, pressed bool) bool {
	switch cfg {
	case EdgeBoth:
		return true
	case EdgeRising:
		return pressed
	case EdgeFalling:
		return !pressed
	}
	return false
}
