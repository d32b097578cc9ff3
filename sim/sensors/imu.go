package sensors

import "math"

// IMU synthesizes a six-axis motion sample as phase-shifted sine waves
// of the supplied time, the way the course mock wiggles its charts.
type IMU struct {
	// PeriodMs is one full oscillation. Values below 1 coerce to 1000.
	PeriodMs int64
	// AccelAmp and GyroAmp scale the waves in raw sensor units.
	AccelAmp int16
	GyroAmp  int16
}

// MotionSample is one synthesized reading in raw sensor units.
type MotionSample struct {
	AccelX, AccelY, AccelZ int16
	GyroX, GyroY, GyroZ    int16
}

// Sample returns the waveform values at nowMs. Axes are offset by a
// third of a cycle each so the traces stay visually distinct.
func (m *IMU) Sample(nowMs int64) MotionSample {
	period := m.PeriodMs
	if period < 1 {
		period = 1000
	}
	aAmp := float64(m.AccelAmp)
	if aAmp == 0 {
		aAmp = 2048
	}
	gAmp := float64(m.GyroAmp)
	if gAmp == 0 {
		gAmp = 1024
	}
	phase := 2 * math.Pi * float64(nowMs%period) / float64(period)
	third := 2 * math.Pi / 3
	return MotionSample{
		AccelX: int16(aAmp * math.Sin(phase)),
		AccelY: int16(aAmp * math.Sin(phase+third)),
		AccelZ: int16(aAmp * math.Sin(phase+2*third)),
		GyroX:  int16(gAmp * math.Cos(phase)),
		GyroY:  int16(gAmp * math.Cos(phase+third)),
		GyroZ:  int16(gAmp * math.Cos(phase+2*third)),
	}
}
