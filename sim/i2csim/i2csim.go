// Package i2csim emulates an I²C fabric on the host. Simulated devices
// register at 7-bit addresses; the Bus satisfies tinygo's drivers.I2C so
// real drivers run against it unchanged.
package i2csim

import "simcore-go/errcode"

// Device handles one addressed transaction: the write bytes first, then
// the read fill, without releasing the bus in between.
type Device interface {
	Transact(w, r []byte) error
}

// Bus routes transactions to attached devices. It implements drivers.I2C.
type Bus struct {
	devices map[uint16]Device
}

// NewBus returns an empty fabric.
func NewBus() *Bus {
	return &Bus{devices: make(map[uint16]Device)}
}

// Attach registers d at addr. Addresses outside the 7-bit range or
// already occupied are rejected.
func (b *Bus) Attach(addr uint16, d Device) error {
	if addr > 0x7F || d == nil {
		return errcode.BadAddress
	}
	if _, taken := b.devices[addr]; taken {
		return errcode.BadAddress
	}
	b.devices[addr] = d
	return nil
}

// Detach removes whatever sits at addr.
func (b *Bus) Detach(addr uint16) { delete(b.devices, addr) }

// Tx performs a write-then-read against the device at addr.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	d, ok := b.devices[addr]
	if !ok {
		return errcode.NoDevice
	}
	return d.Transact(w, r)
}
