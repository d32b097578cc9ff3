// Package telemetry is the simulator's periodic producer. A caller-
// driven Tick samples the simulated sensors on their configured periods
// and turns the readings into bus events and log lines: heartbeats,
// per-channel sensor updates, motion samples, and threshold alerts.
// Nothing here spawns; the host loop owns time.
package telemetry

import (
	"simcore-go/drivers/aht20"
	"simcore-go/event"
	"simcore-go/logx"
	"simcore-go/sim/sensors"
)

// Alert codes carried in event.AlertData.Code.
const (
	AlertOverTemp uint8 = iota + 1
	AlertLowLight
)

// Defaults for Config fields left at zero.
const (
	DefaultTickPeriodMs   = 1000
	DefaultSensorPeriodMs = 250
	DefaultMotionPeriodMs = 100
	DefaultOverTempDeciC  = 450
	DefaultLowLightPct    = 10
)

// Config sets the sampling schedule and alert thresholds.
type Config struct {
	TickPeriodMs   int64
	SensorPeriodMs int64
	MotionPeriodMs int64

	// OverTempDeciC raises an alert when the climate reading reaches it.
	OverTempDeciC int32
	// LowLightPct raises an alert when the light channel drops below it.
	LowLightPct uint8
}

// Service samples the simulated sources and publishes the results.
type Service struct {
	cfg     Config
	bus     *event.Bus
	log     *logx.Logger
	bank    *sensors.Bank
	imu     *sensors.IMU
	climate *sensors.Climate

	running bool
	ticks   uint32
	drops   int

	nextTickMs   int64
	nextSensorMs int64
	nextMotionMs int64

	climateArmed bool
	overTemp     bool
	lowLight     bool
}

// New wires the producer. imu and climate may be nil to disable those
// sources; bank is required.
func New(bus *event.Bus, log *logx.Logger, bank *sensors.Bank, imu *sensors.IMU, climate *sensors.Climate, cfg Config) *Service {
	if cfg.TickPeriodMs < 1 {
		cfg.TickPeriodMs = DefaultTickPeriodMs
	}
	if cfg.SensorPeriodMs < 1 {
		cfg.SensorPeriodMs = DefaultSensorPeriodMs
	}
	if cfg.MotionPeriodMs < 1 {
		cfg.MotionPeriodMs = DefaultMotionPeriodMs
	}
	if cfg.OverTempDeciC == 0 {
		cfg.OverTempDeciC = DefaultOverTempDeciC
	}
	if cfg.LowLightPct == 0 {
		cfg.LowLightPct = DefaultLowLightPct
	}
	return &Service{cfg: cfg, bus: bus, log: log, bank: bank, imu: imu, climate: climate}
}

// Start arms the schedule so the next Tick at or after nowMs samples
// every source once.
func (s *Service) Start(nowMs int64) {
	s.running = true
	s.nextTickMs = nowMs
	s.nextSensorMs = nowMs
	s.nextMotionMs = nowMs
	s.climateArmed = false
	s.log.LogTag(logx.Info, "telemetry", "started")
}

// Stop disarms the schedule. Tick becomes a no-op until the next Start.
func (s *Service) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.log.LogTag(logx.Info, "telemetry", "stopped")
}

// Running reports whether the schedule is armed.
func (s *Service) Running() bool { return s.running }

// Ticks returns how many heartbeats have been published since Start.
func (s *Service) Ticks() uint32 { return s.ticks }

// Dropped returns how many publishes were rejected by a full queue.
func (s *Service) Dropped() int { return s.drops }

// Tick advances the producer to nowMs, emitting whatever the schedule
// owes. The host loop calls it once per iteration.
func (s *Service) Tick(nowMs int64) {
	if !s.running {
		return
	}
	if nowMs >= s.nextTickMs {
		s.nextTickMs = nowMs + s.cfg.TickPeriodMs
		s.heartbeat()
	}
	if nowMs >= s.nextSensorMs {
		s.nextSensorMs = nowMs + s.cfg.SensorPeriodMs
		s.sampleSensors()
	}
	if s.imu != nil && nowMs >= s.nextMotionMs {
		s.nextMotionMs = nowMs + s.cfg.MotionPeriodMs
		s.sampleMotion(nowMs)
	}
}

func (s *Service) heartbeat() {
	s.ticks++
	s.publish(event.Tick, &event.Payload{Tick: s.ticks})
	s.log.LogTag(logx.Verbose, "telemetry", "tick %d", s.ticks)
}

func (s *Service) sampleSensors() {
	s.bank.Step()
	for ch := sensors.Channel(0); ch < sensors.ChannelCount; ch++ {
		s.publish(event.SensorUpdate, &event.Payload{Sensor: event.SensorData{
			Channel:    uint8(ch),
			Raw:        s.bank.Raw(ch),
			Percent:    s.bank.Percent(ch),
			Millivolts: s.bank.Millivolts(ch),
		}})
	}
	s.checkLight()
	s.stepClimate()
}

func (s *Service) sampleMotion(nowMs int64) {
	m := s.imu.Sample(nowMs)
	s.publish(event.MotionUpdate, &event.Payload{Motion: event.MotionData{
		AccelX: m.AccelX, AccelY: m.AccelY, AccelZ: m.AccelZ,
		GyroX: m.GyroX, GyroY: m.GyroY, GyroZ: m.GyroZ,
	}})
}

// checkLight raises one alert per excursion below the threshold.
func (s *Service) checkLight() {
	pct := s.bank.Percent(sensors.ChanLight)
	low := pct < s.cfg.LowLightPct
	if low && !s.lowLight {
		s.publish(event.Alert, &event.Payload{Alert: event.AlertData{
			Code:  AlertLowLight,
			Value: int32(pct),
		}})
		s.log.LogTag(logx.Warn, "telemetry", "light low: %d%%", pct)
	}
	if !low && s.lowLight {
		s.log.LogTag(logx.Info, "telemetry", "light recovered: %d%%", pct)
	}
	s.lowLight = low
}

// stepClimate interleaves the two-phase AHT20 cycle across sensor
// periods: trigger on one pass, collect on a later one.
func (s *Service) stepClimate() {
	if s.climate == nil {
		return
	}
	if !s.climateArmed {
		if err := s.climate.Trigger(); err != nil {
			s.log.LogTag(logx.Error, "telemetry", "climate trigger: %s", err)
			return
		}
		s.climateArmed = true
		return
	}
	deciC, deciRH, err := s.climate.Collect()
	if err == aht20.ErrNotReady {
		return
	}
	s.climateArmed = false
	if err != nil {
		s.log.LogTag(logx.Error, "telemetry", "climate collect: %s", err)
		return
	}
	s.log.LogTag(logx.Debug, "telemetry", "climate %d.%d C %d.%d %%RH",
		deciC/10, abs32(deciC%10), deciRH/10, abs32(deciRH%10))

	hot := deciC >= s.cfg.OverTempDeciC
	if hot && !s.overTemp {
		s.publish(event.Alert, &event.Payload{Alert: event.AlertData{
			Code:  AlertOverTemp,
			Value: deciC,
		}})
		s.log.LogTag(logx.Error, "telemetry", "over-temperature: %d.%d C", deciC/10, abs32(deciC%10))
	}
	if !hot && s.overTemp {
		s.log.LogTag(logx.Info, "telemetry", "temperature normal: %d.%d C", deciC/10, abs32(deciC%10))
	}
	s.overTemp = hot
}

func (s *Service) publish(k event.Kind, p *event.Payload) {
	if !s.bus.Publish(k, p) {
		s.drops++
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
