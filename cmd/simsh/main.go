// simsh is an interactive console for poking the simulator core: publish
// events, drive the board, adjust the logger, and watch the bounded
// queues behave. Each command line is tokenized with shlex and the
// queues are drained after every command, standing in for the host
// run-loop.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"

	"simcore-go/config"
	"simcore-go/event"
	"simcore-go/logx"
	"simcore-go/services/telemetry"
	"simcore-go/sim/gpio"
	"simcore-go/sim/sensors"
	"simcore-go/x/bytering"
	"simcore-go/x/timex"
)

type panel struct{ text string }

func (p *panel) SetText(s string) { p.text = s }

// shell bundles the simulator pieces behind the command table.
type shell struct {
	prof    config.Profile
	bus     *event.Bus
	log     *logx.Logger
	view    *panel
	pipe    *bytering.Ring
	board   *gpio.Board
	bank    *sensors.Bank
	climate *sensors.Climate
	svc     *telemetry.Service
}

func newShell(profile string) (*shell, error) {
	prof, err := config.Load(profile)
	if err != nil {
		return nil, err
	}
	s := &shell{
		prof:  prof,
		bus:   event.NewBus(prof.BusConfig()),
		log:   logx.New(prof.LogConfig()),
		view:  &panel{},
		pipe:  bytering.New(1024),
		board: gpio.NewBoard(),
		bank:  sensors.NewBank(sensors.Config{}),
	}
	s.bus.Init()
	s.log.Init()
	s.log.SetLevel(prof.Level())
	s.log.AttachDisplay(s.view, prof.DisplayLines)
	s.log.AttachStream(s.pipe.Writer())

	s.bank.SetRaw(sensors.ChanLight, s.bank.MaxRaw())
	s.climate = sensors.NewClimate(1)
	s.svc = telemetry.New(s.bus, s.log, s.bank, &sensors.IMU{}, s.climate, prof.TelemetryConfig())

	s.board.OnButton(0, gpio.EdgeBoth, 0, s.publishButton)
	s.board.OnButton(1, gpio.EdgeBoth, 0, s.publishButton)
	s.board.OnLED(func(led uint8, on bool) {
		s.bus.Publish(event.LEDChange, &event.Payload{LED: event.LEDData{LED: led, On: on}})
	})

	// Echo delivered events so queue behavior is visible.
	for k := event.Kind(0); k < event.KindCount; k++ {
		s.bus.Subscribe(k, s.echoEvent, nil)
	}
	return s, nil
}

func (s *shell) publishButton(btn uint8, pressed bool) {
	s.bus.Publish(event.ButtonPress, &event.Payload{
		Button: event.ButtonData{Button: btn, Pressed: pressed},
	})
}

func (s *shell) echoEvent(k event.Kind, p *event.Payload, _ any) {
	switch k {
	case event.SensorUpdate:
		fmt.Printf("<- %s ch=%d raw=%d %d%% %dmV\n",
			k, p.Sensor.Channel, p.Sensor.Raw, p.Sensor.Percent, p.Sensor.Millivolts)
	case event.MotionUpdate:
		fmt.Printf("<- %s accel=%d,%d,%d\n", k, p.Motion.AccelX, p.Motion.AccelY, p.Motion.AccelZ)
	case event.Alert:
		fmt.Printf("<- %s code=%d value=%d\n", k, p.Alert.Code, p.Alert.Value)
	default:
		if p == nil {
			fmt.Printf("<- %s\n", k)
		} else {
			fmt.Printf("<- %s %+v\n", k, *p)
		}
	}
}

// drain is the per-command stand-in for the host run-loop iteration.
func (s *shell) drain() {
	s.svc.Tick(timex.NowMs())
	s.bus.Process()
	s.log.Flush()
}

func (s *shell) run(line string) (quit bool) {
	args, err := shlex.Split(line)
	if err != nil {
		fmt.Println("parse error:", err)
		return false
	}
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "quit", "exit":
		return true
	case "help":
		usage()
	case "publish":
		s.cmdPublish(args[1:], false)
	case "immediate":
		s.cmdPublish(args[1:], true)
	case "log":
		s.cmdLog(args[1:], "")
	case "tag":
		if len(args) < 2 {
			fmt.Println("usage: tag TAG LEVEL MESSAGE...")
			break
		}
		s.cmdLog(args[2:], args[1])
	case "level":
		s.cmdLevel(args[1:])
	case "targets":
		fmt.Println("targets:", s.log.Targets())
	case "adc":
		s.cmdADC(args[1:])
	case "button":
		s.cmdButton(args[1:])
	case "led":
		s.cmdLED(args[1:])
	case "climate":
		s.cmdClimate(args[1:])
	case "start":
		s.svc.Start(timex.NowMs())
	case "stop":
		s.svc.Stop()
	case "view":
		fmt.Println("---- display ----")
		fmt.Println(s.view.text)
	case "pipe":
		s.cmdPipe()
	case "stats":
		fmt.Printf("events queued=%d  logs queued=%d dropped=%d  heartbeats=%d publish drops=%d\n",
			s.bus.QueueLen(), s.log.QueueLen(), s.log.Dropped(), s.svc.Ticks(), s.svc.Dropped())
	case "process":
		// nothing to do: the drain below is the whole command
	default:
		fmt.Println("unknown command:", args[0], "(try help)")
		return false
	}
	s.drain()
	return false
}

func (s *shell) cmdPublish(args []string, immediate bool) {
	if len(args) < 1 {
		fmt.Println("usage: publish KIND [VALUE]")
		return
	}
	k, ok := event.ParseKind(args[0])
	if !ok {
		fmt.Println("unknown kind:", args[0])
		return
	}
	var p *event.Payload
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("bad value:", args[1])
			return
		}
		p = &event.Payload{Tick: uint32(v), Alert: event.AlertData{Value: int32(v)}}
	}
	if immediate {
		s.bus.PublishImmediate(k, p)
		return
	}
	if !s.bus.Publish(k, p) {
		fmt.Println("publish rejected: queue full")
	}
}

func (s *shell) cmdLog(args []string, tag string) {
	if len(args) < 2 {
		fmt.Println("usage: log LEVEL MESSAGE...")
		return
	}
	lv, ok := logx.ParseLevel(args[0])
	if !ok {
		fmt.Println("unknown level:", args[0])
		return
	}
	msg := args[1]
	for _, a := range args[2:] {
		msg += " " + a
	}
	if tag == "" {
		s.log.Log(lv, "%s", msg)
	} else {
		s.log.LogTag(lv, tag, "%s", msg)
	}
}

func (s *shell) cmdLevel(args []string) {
	if len(args) == 0 {
		fmt.Println("level:", s.log.Level())
		return
	}
	lv, ok := logx.ParseLevel(args[0])
	if !ok {
		fmt.Println("unknown level:", args[0])
		return
	}
	s.log.SetLevel(lv)
}

func (s *shell) cmdADC(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: adc CHANNEL RAW")
		return
	}
	ch, ok := sensors.ParseChannel(args[0])
	if !ok {
		fmt.Println("unknown channel:", args[0])
		return
	}
	v, err := strconv.Atoi(args[1])
	if err != nil || v < 0 {
		fmt.Println("bad raw value:", args[1])
		return
	}
	if v > 0xFFFF {
		v = 0xFFFF
	}
	s.bank.SetRaw(ch, uint16(v))
}

func (s *shell) cmdButton(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: button N press|release")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("bad button:", args[0])
		return
	}
	switch args[1] {
	case "press":
		s.board.SetButton(n, true, timex.NowMs())
	case "release":
		s.board.SetButton(n, false, timex.NowMs())
	default:
		fmt.Println("usage: button N press|release")
	}
}

func (s *shell) cmdLED(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: led N on|off|toggle")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("bad led:", args[0])
		return
	}
	switch args[1] {
	case "on":
		s.board.SetLED(n, true)
	case "off":
		s.board.SetLED(n, false)
	case "toggle":
		s.board.ToggleLED(n)
	default:
		fmt.Println("usage: led N on|off|toggle")
	}
}

func (s *shell) cmdClimate(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: climate DECI_C DECI_RH")
		return
	}
	c, err1 := strconv.Atoi(args[0])
	rh, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("bad climate values")
		return
	}
	s.climate.SetClimate(int32(c), int32(rh))
}

func (s *shell) cmdPipe() {
	buf := make([]byte, 256)
	total := 0
	fmt.Println("---- pipe ----")
	for {
		n := s.pipe.TryRead(buf)
		if n == 0 {
			break
		}
		os.Stdout.Write(buf[:n])
		total += n
	}
	fmt.Printf("(%d bytes)\n", total)
}

func usage() {
	fmt.Print(`commands:
  publish KIND [VALUE]     queue an event (tick, sensor_update, ...)
  immediate KIND [VALUE]   deliver an event synchronously
  log LEVEL MESSAGE...     log a line (error, warn, info, debug, verbose)
  tag TAG LEVEL MESSAGE... log with a [TAG] prefix
  level [LEVEL]            show or set the severity threshold
  targets                  show the sink routing mask
  adc CHANNEL RAW          set an ADC channel (pot, light, aux, temp)
  button N press|release   drive a button edge
  led N on|off|toggle      drive an LED
  climate DECI_C DECI_RH   program the simulated climate
  start | stop             arm or disarm telemetry
  view                     print the rolling display panel
  pipe                     drain the stream sink
  stats                    queue and drop counters
  process                  drain queues without another command
  quit
`)
}

func main() {
	sh, err := newShell(os.Getenv("SIMCORE_PROFILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("simsh — profile %q (help for commands)\n", sh.prof.Name)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		if sh.run(in.Text()) {
			break
		}
	}
}
