package sensors

import (
	"testing"

	"simcore-go/drivers/aht20"
)

func TestBankScaling(t *testing.T) {
	b := NewBank(Config{}) // 12-bit, 3300 mV
	if got, want := b.MaxRaw(), uint16(4095); got != want {
		t.Fatalf("MaxRaw = %d, want %d", got, want)
	}

	b.SetRaw(ChanPot, 4095)
	if got := b.Percent(ChanPot); got != 100 {
		t.Fatalf("Percent at full scale = %d, want 100", got)
	}
	if got := b.Millivolts(ChanPot); got != 3300 {
		t.Fatalf("Millivolts at full scale = %d, want 3300", got)
	}

	b.SetRaw(ChanLight, 0)
	if got := b.Percent(ChanLight); got != 0 {
		t.Fatalf("Percent at zero = %d, want 0", got)
	}

	// Writes past full scale clamp.
	b.SetRaw(ChanAux, 0xFFFF)
	if got := b.Raw(ChanAux); got != 4095 {
		t.Fatalf("clamped Raw = %d, want 4095", got)
	}

	if b.SetRaw(ChannelCount, 1) {
		t.Fatal("SetRaw accepted an invalid channel")
	}
	if got := b.Raw(ChannelCount); got != 0 {
		t.Fatalf("invalid channel reads %d, want 0", got)
	}
}

func TestBankSlewReachesTarget(t *testing.T) {
	b := NewBank(Config{})
	b.SetRaw(ChanPot, 0)
	b.SetTarget(ChanPot, 4000)

	prev := b.Raw(ChanPot)
	for i := 0; i < 200; i++ {
		b.Step()
		cur := b.Raw(ChanPot)
		if cur < prev {
			t.Fatalf("slew moved backwards: %d -> %d", prev, cur)
		}
		prev = cur
		if cur == 4000 {
			return
		}
	}
	t.Fatalf("slew stalled at %d, want 4000", prev)
}

func TestBankSetRawCancelsSlew(t *testing.T) {
	b := NewBank(Config{})
	b.SetTarget(ChanLight, 4000)
	b.SetRaw(ChanLight, 100)
	b.Step()
	if got := b.Raw(ChanLight); got != 100 {
		t.Fatalf("Raw = %d after cancelled slew, want 100", got)
	}
}

func TestIMUSampleBounded(t *testing.T) {
	imu := &IMU{PeriodMs: 1000, AccelAmp: 2000, GyroAmp: 500}
	for now := int64(0); now < 2000; now += 50 {
		s := imu.Sample(now)
		for _, v := range []int16{s.AccelX, s.AccelY, s.AccelZ} {
			if v < -2000 || v > 2000 {
				t.Fatalf("accel %d outside amplitude at t=%d", v, now)
			}
		}
		for _, v := range []int16{s.GyroX, s.GyroY, s.GyroZ} {
			if v < -500 || v > 500 {
				t.Fatalf("gyro %d outside amplitude at t=%d", v, now)
			}
		}
	}
}

func TestClimateTwoPhase(t *testing.T) {
	c := NewClimate(1)
	c.SetClimate(412, 335)

	if err := c.Trigger(); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if _, _, err := c.Collect(); err != aht20.ErrNotReady {
		t.Fatalf("Collect during conversion: %v, want ErrNotReady", err)
	}
	deciC, deciRH, err := c.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if deciC != 412 || deciRH != 335 {
		t.Fatalf("climate = %d/%d, want 412/335", deciC, deciRH)
	}
}
