package i2csim

import "simcore-go/errcode"

// AHT20 protocol bytes, mirrored from the driver side.
const (
	aht20CmdTrigger = 0xAC
	aht20CmdInit    = 0xBE
	aht20CmdReset   = 0xBA
	aht20CmdStatus  = 0x71

	aht20StatusBusy       = 0x80
	aht20StatusCalibrated = 0x08
)

// AHT20Sim emulates the AHT20 climate sensor: init/calibrate, triggered
// conversion with a busy window, 7-byte measurement frames carrying
// 20-bit humidity and temperature. The reported climate is programmable.
type AHT20Sim struct {
	calibrated bool
	busyPolls  int // reads remaining before the conversion is "done"

	// busy window length in Collect polls after each trigger
	conversionPolls int

	deciC  int32 // tenths of °C, encoded into frames
	deciRH int32 // tenths of %RH
}

// NewAHT20Sim returns an uncalibrated sensor at a mild indoor climate.
// conversionPolls is how many measurement reads report busy after a
// trigger before data is ready; values below 0 are coerced to 0.
func NewAHT20Sim(conversionPolls int) *AHT20Sim {
	if conversionPolls < 0 {
		conversionPolls = 0
	}
	return &AHT20Sim{
		conversionPolls: conversionPolls,
		deciC:           235,
		deciRH:          450,
	}
}

// SetClimate programs the environment the sensor reports, in tenths of
// °C and tenths of %RH. Values are clamped to the AHT20's encodable
// range (-50..150 °C, 0..100 %RH).
func (s *AHT20Sim) SetClimate(deciC, deciRH int32) {
	if deciC < -500 {
		deciC = -500
	}
	if deciC > 1500 {
		deciC = 1500
	}
	if deciRH < 0 {
		deciRH = 0
	}
	if deciRH > 1000 {
		deciRH = 1000
	}
	s.deciC, s.deciRH = deciC, deciRH
}

// Calibrated reports whether an init command has been accepted.
func (s *AHT20Sim) Calibrated() bool { return s.calibrated }

// Transact implements Device for the AHT20 command set.
func (s *AHT20Sim) Transact(w, r []byte) error {
	if len(w) == 0 {
		return s.readMeasurement(r)
	}
	switch w[0] {
	case aht20CmdStatus:
		if len(r) < 1 {
			return errcode.BadFrame
		}
		r[0] = s.status()
		return nil
	case aht20CmdInit:
		s.calibrated = true
		return nil
	case aht20CmdReset:
		s.calibrated = false
		s.busyPolls = 0
		return nil
	case aht20CmdTrigger:
		if len(w) != 3 || w[1] != 0x33 || w[2] != 0x00 {
			return errcode.BadFrame
		}
		s.busyPolls = s.conversionPolls
		return nil
	}
	return errcode.BadFrame
}

func (s *AHT20Sim) status() byte {
	var st byte
	if s.calibrated {
		st |= aht20StatusCalibrated
	}
	if s.busyPolls > 0 {
		st |= aht20StatusBusy
	}
	return st
}

// readMeasurement fills a status + 20-bit humidity/temperature frame.
// Each poll while busy consumes one unit of the conversion window.
func (s *AHT20Sim) readMeasurement(r []byte) error {
	if len(r) < 6 {
		return errcode.BadFrame
	}
	st := s.status()
	if s.busyPolls > 0 {
		s.busyPolls--
	}
	for i := range r {
		r[i] = 0
	}
	r[0] = st
	if st&aht20StatusBusy != 0 {
		return nil
	}

	// Inverse of the driver's fixed-point decode. Ceiling division so
	// the driver's truncating conversion lands back on the exact value.
	hraw := uint32((s.deciRH*0x100000 + 999) / 1000)
	traw := uint32(((s.deciC+500)*0x100000 + 1999) / 2000)
	r[1] = byte(hraw >> 12)
	r[2] = byte(hraw >> 4)
	r[3] = byte(hraw<<4) | byte((traw>>16)&0x0F)
	r[4] = byte(traw >> 8)
	r[5] = byte(traw)
	return nil
}
