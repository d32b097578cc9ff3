package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"simcore-go/config"
	"simcore-go/event"
	"simcore-go/logx"
	"simcore-go/services/telemetry"
	"simcore-go/sim/gpio"
	"simcore-go/sim/sensors"
	"simcore-go/x/timex"
)

const framePeriod = 100 * time.Millisecond

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// panel receives the rolling display text from the log router.
type panel struct{ text string }

func (p *panel) SetText(s string) { p.text = s }

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("25")).Padding(0, 1)
	gaugeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	ledOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ledOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type model struct {
	prof config.Profile

	bus     *event.Bus
	log     *logx.Logger
	view    *panel
	board   *gpio.Board
	bank    *sensors.Bank
	climate *sensors.Climate
	svc     *telemetry.Service

	vp        viewport.Model
	width     int
	height    int
	ready     bool
	lastLevel string
	lastAlert string
	btnHeld   [gpio.NumButtons]bool
}

func newModel(prof config.Profile) *model {
	m := &model{
		prof:  prof,
		bus:   event.NewBus(prof.BusConfig()),
		log:   logx.New(prof.LogConfig()),
		view:  &panel{},
		board: gpio.NewBoard(),
		bank:  sensors.NewBank(sensors.Config{}),
	}
	m.bus.Init()
	m.log.Init()
	// The alt screen owns the terminal; drop the immediate echo and keep
	// the display sink as the only route.
	m.log.SetConsole(io.Discard)
	m.log.SetTargets(logx.TargetNone)
	m.log.SetLevel(prof.Level())
	m.log.AttachDisplay(m.view, prof.DisplayLines)

	m.bank.SetRaw(sensors.ChanLight, m.bank.MaxRaw())
	m.bank.SetRaw(sensors.ChanPot, m.bank.MaxRaw()/2)
	m.climate = sensors.NewClimate(1)
	m.svc = telemetry.New(m.bus, m.log, m.bank, &sensors.IMU{}, m.climate, prof.TelemetryConfig())

	m.board.OnButton(0, gpio.EdgeBoth, 0, m.publishButton)
	m.board.OnButton(1, gpio.EdgeBoth, 0, m.publishButton)
	m.board.OnLED(func(led uint8, on bool) {
		m.bus.Publish(event.LEDChange, &event.Payload{LED: event.LEDData{LED: led, On: on}})
		m.log.LogTag(logx.Info, "board", "led %d %s", led, onOff(on))
	})
	m.bus.Subscribe(event.Alert, func(_ event.Kind, p *event.Payload, _ any) {
		m.lastAlert = fmt.Sprintf("alert code=%d value=%d", p.Alert.Code, p.Alert.Value)
	}, nil)
	m.bus.Subscribe(event.ButtonPress, func(_ event.Kind, p *event.Payload, _ any) {
		m.log.LogTag(logx.Info, "board", "button %d %s", p.Button.Button, pressRelease(p.Button.Pressed))
	}, nil)

	m.svc.Start(timex.NowMs())
	return m
}

func (m *model) publishButton(btn uint8, pressed bool) {
	m.bus.Publish(event.ButtonPress, &event.Payload{
		Button: event.ButtonData{Button: btn, Pressed: pressed},
	})
}

func (m *model) Init() tea.Cmd { return frameTick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := m.height - 8
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(m.width-4, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = m.width - 4
			m.vp.Height = vpHeight
		}
		return m, nil

	case frameMsg:
		m.step()
		return m, frameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// step is one host-loop iteration: produce, drain, render.
func (m *model) step() {
	m.applyConfigLevel()
	m.svc.Tick(timex.NowMs())
	m.bus.Process()
	m.log.Flush()
	if m.ready {
		m.vp.SetContent(m.view.text)
		m.vp.GotoBottom()
	}
}

// applyConfigLevel picks up log_level edits from flags, env or a watched
// config file, on the Elm loop rather than the fsnotify goroutine.
func (m *model) applyConfigLevel() {
	name := viper.GetString("log_level")
	if name == "" || name == m.lastLevel {
		return
	}
	if lv, ok := logx.ParseLevel(name); ok {
		m.log.SetLevel(lv)
		m.log.LogTag(logx.Info, "dash", "log level -> %s", lv)
	}
	m.lastLevel = name
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.svc.Stop()
		return m, tea.Quit
	case "1", "2", "3":
		m.board.ToggleLED(int(msg.String()[0] - '1'))
	case "a":
		m.tapButton(0)
	case "b":
		m.tapButton(1)
	case "left":
		m.nudgePot(-256)
	case "right":
		m.nudgePot(256)
	case "d":
		// lights out / lights back
		if m.bank.Percent(sensors.ChanLight) > 0 {
			m.bank.SetTarget(sensors.ChanLight, 0)
		} else {
			m.bank.SetTarget(sensors.ChanLight, m.bank.MaxRaw())
		}
	case "h":
		// heat the climate rig past the alert threshold, or cool it back
		if m.lastAlert == "" {
			m.climate.SetClimate(m.prof.OverTempDeciC+50, 500)
		} else {
			m.climate.SetClimate(235, 450)
			m.lastAlert = ""
		}
	}
	return m, nil
}

func (m *model) tapButton(n int) {
	m.btnHeld[n] = !m.btnHeld[n]
	m.board.SetButton(n, m.btnHeld[n], timex.NowMs())
}

func (m *model) nudgePot(delta int) {
	cur := int(m.bank.Raw(sensors.ChanPot)) + delta
	if cur < 0 {
		cur = 0
	}
	m.bank.SetTarget(sensors.ChanPot, uint16(cur))
}

func (m *model) View() string {
	if !m.ready {
		return "starting…"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("simdash — profile "+m.prof.Name) + "\n\n")

	b.WriteString(gauge("pot  ", m.bank.Percent(sensors.ChanPot)))
	b.WriteString(gauge("light", m.bank.Percent(sensors.ChanLight)))
	b.WriteString(m.ledLine() + "\n")
	if m.lastAlert != "" {
		b.WriteString(alertStyle.Render("⚠ "+m.lastAlert) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(panelStyle.Render(m.vp.View()) + "\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"1-3 leds  a/b buttons  ←/→ pot  d dark  h heat  q quit   ev=%d log=%d drop=%d",
		m.bus.QueueLen(), m.log.QueueLen(), m.log.Dropped())))
	return b.String()
}

func gauge(label string, pct uint8) string {
	const width = 24
	fill := int(pct) * width / 100
	bar := strings.Repeat("█", fill) + strings.Repeat("░", width-fill)
	return gaugeStyle.Render(fmt.Sprintf("%s [%s] %3d%%", label, bar, pct)) + "\n"
}

func (m *model) ledLine() string {
	var parts []string
	for i := 0; i < gpio.NumLEDs; i++ {
		if m.board.LED(i) {
			parts = append(parts, ledOnStyle.Render("●"))
		} else {
			parts = append(parts, ledOffStyle.Render("○"))
		}
	}
	return "leds  " + strings.Join(parts, " ")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func pressRelease(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}
