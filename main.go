// Headless demo: wires the notification core to the simulated board and
// runs a short host loop, the same drain discipline the interactive
// front-ends use.
package main

import (
	"fmt"
	"os"
	"time"

	"simcore-go/config"
	"simcore-go/event"
	"simcore-go/logx"
	"simcore-go/services/telemetry"
	"simcore-go/sim/gpio"
	"simcore-go/sim/sensors"
	"simcore-go/x/timex"
)

// panel is a minimal display target: it just remembers the last text
// block the rolling ring pushed at it.
type panel struct{ text string }

func (p *panel) SetText(s string) { p.text = s }

func main() {
	prof, err := config.Load(os.Getenv("SIMCORE_PROFILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bus := event.NewBus(prof.BusConfig())
	bus.Init()
	log := logx.New(prof.LogConfig())
	log.Init()
	log.SetLevel(prof.Level())

	view := &panel{}
	log.AttachDisplay(view, prof.DisplayLines)

	// Consumers: the UI layer this demo stands in for.
	bus.Subscribe(event.Alert, func(_ event.Kind, p *event.Payload, _ any) {
		log.LogTag(logx.Warn, "ui", "alert code=%d value=%d", p.Alert.Code, p.Alert.Value)
	}, nil)
	sensorUpdates := 0
	bus.Subscribe(event.SensorUpdate, func(event.Kind, *event.Payload, any) {
		sensorUpdates++
	}, nil)
	bus.Subscribe(event.ButtonPress, func(_ event.Kind, p *event.Payload, _ any) {
		log.LogTag(logx.Info, "ui", "button %d pressed=%t", p.Button.Button, p.Button.Pressed)
	}, nil)

	// Producers: board glue publishing into the bus.
	board := gpio.NewBoard()
	board.OnButton(0, gpio.EdgeBoth, 0, func(btn uint8, pressed bool) {
		bus.Publish(event.ButtonPress, &event.Payload{
			Button: event.ButtonData{Button: btn, Pressed: pressed},
		})
	})
	board.OnLED(func(led uint8, on bool) {
		bus.Publish(event.LEDChange, &event.Payload{
			LED: event.LEDData{LED: led, On: on},
		})
	})

	bank := sensors.NewBank(sensors.Config{})
	bank.SetRaw(sensors.ChanLight, bank.MaxRaw())
	bank.SetTarget(sensors.ChanPot, bank.MaxRaw()/2)
	climate := sensors.NewClimate(1)
	climate.SetClimate(238, 520)

	svc := telemetry.New(bus, log, bank, &sensors.IMU{}, climate, prof.TelemetryConfig())
	svc.Start(timex.NowMs())

	for i := 0; i < 40; i++ {
		now := timex.NowMs()
		switch i {
		case 10:
			board.SetButton(0, true, now)
		case 12:
			board.SetButton(0, false, now)
		case 20:
			board.ToggleLED(0)
			bank.SetRaw(sensors.ChanLight, 0) // lights out: expect an alert
		case 30:
			climate.SetClimate(480, 520) // over-temperature
		}

		svc.Tick(now)
		bus.Process()
		log.Flush()
		time.Sleep(50 * time.Millisecond)
	}
	svc.Stop()
	bus.Process()
	log.Flush()

	fmt.Println("---- rolling display ----")
	fmt.Println(view.text)
	fmt.Printf("sensor updates: %d, heartbeats: %d, event drops: %d, log drops: %d\n",
		sensorUpdates, svc.Ticks(), svc.Dropped(), log.Dropped())
}
