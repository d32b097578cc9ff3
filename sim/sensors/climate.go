package sensors

import (
	"time"

	"simcore-go/drivers/aht20"
	"simcore-go/sim/i2csim"
)

// Climate wires the real AHT20 driver to a simulated sensor on an
// internal I²C fabric. Measurement stays two-phase so a cooperative
// caller can trigger on one tick and collect on a later one.
type Climate struct {
	sensor *i2csim.AHT20Sim
	dev    aht20.Device
}

// NewClimate builds the rig. conversionPolls is how many Collect
// attempts after a Trigger still report not-ready.
func NewClimate(conversionPolls int) *Climate {
	bus := i2csim.NewBus()
	sensor := i2csim.NewAHT20Sim(conversionPolls)
	// The fabric was built empty above; Attach cannot collide.
	_ = bus.Attach(aht20.Address, sensor)
	c := &Climate{sensor: sensor, dev: aht20.New(bus)}
	c.dev.Configure(aht20.Config{
		PollInterval:   time.Millisecond,
		CollectTimeout: 50 * time.Millisecond,
	})
	return c
}

// SetClimate programs the simulated environment in tenths of °C and
// tenths of %RH.
func (c *Climate) SetClimate(deciC, deciRH int32) {
	c.sensor.SetClimate(deciC, deciRH)
}

// Trigger starts a conversion.
func (c *Climate) Trigger() error { return c.dev.Trigger() }

// Collect fetches the finished conversion. aht20.ErrNotReady means the
// busy window has not elapsed yet.
func (c *Climate) Collect() (deciC, deciRH int32, err error) {
	var s aht20.Sample
	if err := c.dev.Collect(&s); err != nil {
		return 0, 0, err
	}
	return s.DeciCelsius(), s.DeciRelHumidity(), nil
}

// Read performs a blocking trigger-and-poll cycle for callers that do
// not interleave.
func (c *Climate) Read() (deciC, deciRH int32, err error) {
	var s aht20.Sample
	if err := c.dev.Read(&s); err != nil {
		return 0, 0, err
	}
	return s.DeciCelsius(), s.DeciRelHumidity(), nil
}
