package telemetry

import (
	"io"
	"testing"

	"simcore-go/event"
	"simcore-go/logx"
	"simcore-go/sim/sensors"
)

type capture struct {
	ticks   []uint32
	sensors []event.SensorData
	motions int
	alerts  []event.AlertData
}

func (c *capture) subscribe(t *testing.T, b *event.Bus) {
	t.Helper()
	ok := b.Subscribe(event.Tick, func(_ event.Kind, p *event.Payload, _ any) {
		c.ticks = append(c.ticks, p.Tick)
	}, nil)
	ok = b.Subscribe(event.SensorUpdate, func(_ event.Kind, p *event.Payload, _ any) {
		c.sensors = append(c.sensors, p.Sensor)
	}, nil) && ok
	ok = b.Subscribe(event.MotionUpdate, func(_ event.Kind, _ *event.Payload, _ any) {
		c.motions++
	}, nil) && ok
	ok = b.Subscribe(event.Alert, func(_ event.Kind, p *event.Payload, _ any) {
		c.alerts = append(c.alerts, p.Alert)
	}, nil) && ok
	if !ok {
		t.Fatal("subscription setup failed")
	}
}

func newRig(t *testing.T, cfg Config) (*Service, *event.Bus, *sensors.Bank, *capture) {
	t.Helper()
	bus := event.NewBus(event.Config{QueueSize: 64})
	bus.Init()
	log := logx.New(logx.Config{})
	log.SetConsole(io.Discard)
	log.Init()
	bank := sensors.NewBank(sensors.Config{})
	// Light at full scale so the low-light alert stays quiet by default.
	bank.SetRaw(sensors.ChanLight, bank.MaxRaw())
	cap := &capture{}
	cap.subscribe(t, bus)
	svc := New(bus, log, bank, &sensors.IMU{}, nil, cfg)
	return svc, bus, bank, cap
}

func TestTickHeartbeatSchedule(t *testing.T) {
	svc, bus, _, cap := newRig(t, Config{TickPeriodMs: 100, SensorPeriodMs: 1000, MotionPeriodMs: 1000})
	svc.Start(0)

	// Due immediately, then every 100 ms; 50 is too early for the second.
	svc.Tick(0)
	svc.Tick(50)
	svc.Tick(100)
	svc.Tick(250)
	bus.Process()

	if len(cap.ticks) != 3 {
		t.Fatalf("heartbeats = %d, want 3", len(cap.ticks))
	}
	for i, v := range cap.ticks {
		if v != uint32(i+1) {
			t.Fatalf("heartbeat %d carries counter %d, want %d", i, v, i+1)
		}
	}
	if svc.Ticks() != 3 {
		t.Fatalf("Ticks() = %d, want 3", svc.Ticks())
	}
}

func TestSensorSampling(t *testing.T) {
	svc, bus, bank, cap := newRig(t, Config{})
	bank.SetRaw(sensors.ChanPot, 2048)
	svc.Start(0)
	svc.Tick(0)
	bus.Process()

	if len(cap.sensors) != int(sensors.ChannelCount) {
		t.Fatalf("sensor updates = %d, want %d", len(cap.sensors), sensors.ChannelCount)
	}
	pot := cap.sensors[sensors.ChanPot]
	if pot.Raw != 2048 {
		t.Fatalf("pot raw = %d, want 2048", pot.Raw)
	}
	if cap.motions != 1 {
		t.Fatalf("motion updates = %d, want 1", cap.motions)
	}
}

func TestLowLightAlertLatches(t *testing.T) {
	svc, bus, bank, cap := newRig(t, Config{LowLightPct: 20})
	svc.Start(0)

	bank.SetRaw(sensors.ChanLight, 0)
	svc.Tick(0)
	svc.Tick(1000) // still dark: no second alert
	bank.SetRaw(sensors.ChanLight, bank.MaxRaw())
	svc.Tick(2000) // recovery clears the latch
	bank.SetRaw(sensors.ChanLight, 0)
	svc.Tick(3000) // new excursion alerts again
	bus.Process()

	if len(cap.alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(cap.alerts))
	}
	for i, a := range cap.alerts {
		if a.Code != AlertLowLight {
			t.Fatalf("alert %d code = %d, want %d", i, a.Code, AlertLowLight)
		}
	}
}

func TestOverTempAlert(t *testing.T) {
	bus := event.NewBus(event.Config{})
	bus.Init()
	log := logx.New(logx.Config{})
	log.SetConsole(io.Discard)
	log.Init()
	bank := sensors.NewBank(sensors.Config{})
	bank.SetRaw(sensors.ChanLight, bank.MaxRaw())
	climate := sensors.NewClimate(0) // data ready on the first collect
	climate.SetClimate(500, 400)

	cap := &capture{}
	cap.subscribe(t, bus)
	svc := New(bus, log, bank, nil, climate, Config{OverTempDeciC: 450, SensorPeriodMs: 10})
	svc.Start(0)

	svc.Tick(0)  // trigger
	svc.Tick(10) // collect: 50.0 C, over threshold
	bus.Process()

	if len(cap.alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(cap.alerts))
	}
	if a := cap.alerts[0]; a.Code != AlertOverTemp || a.Value != 500 {
		t.Fatalf("alert = %+v, want code %d value 500", a, AlertOverTemp)
	}
}

func TestStopSilencesTick(t *testing.T) {
	svc, bus, _, cap := newRig(t, Config{})
	svc.Start(0)
	svc.Stop()
	svc.Tick(0)
	bus.Process()
	if len(cap.ticks) != 0 || len(cap.sensors) != 0 {
		t.Fatal("stopped service still produced events")
	}
}
