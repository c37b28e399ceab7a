// internal/simulator/simulator.go
package simulator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tamzrod/smartheater/internal/codec"
	"github.com/tamzrod/smartheater/internal/status"
)

// Device is an in-memory heater register map implementing the session transport.
// It backs tests and the CLI --simulate mode.
type Device struct {
	mu    sync.Mutex
	regs  map[uint16]uint16
	fail  map[uint16]error
	next  error
	calls []Call
}

// Call records one transaction seen by the device.
type Call struct {
	Write   bool
	Address uint16
	Words   []uint16 // written words, or nil for reads
	Count   uint16
}

// ErrNoRegister is the cause attached to reads and writes of unmapped registers.
var ErrNoRegister = errors.New("simulator: no such register")

// New returns an empty device. Every register is unmapped.
func New() *Device {
	return &Device{
		regs: make(map[uint16]uint16),
		fail: make(map[uint16]error),
	}
}

// NewHeater returns a device seeded with plausible E.G.O. Smart Heater contents.
func NewHeater() *Device {
	d := New()

	// basic device information
	d.Set(0x2000, 0x14EF)
	d.Set(0x2001, 0x0001)
	d.Set(0x2002, 0x0002)
	d.Set(0x2003, 0x0064)
	d.SetText(0x2004, "E.G.O.")
	d.SetText(0x2014, "Smart Heater")
	d.SetText(0x2024, "SH-000123")
	d.Set(0x2034, 0x0304, 0x2015) // 2015-03-04, low word first

	// relay configuration blocks: power, seconds(2), cycles(2), min on, min off
	d.Set(0x1000, 500, 100, 0, 10, 0, 60, 60)
	d.Set(0x1020, 1000, 200, 0, 20, 0, 60, 60)
	d.Set(0x1040, 2000, 300, 0, 30, 0, 60, 60)

	// configuration
	d.Set(0x1204, 3)
	d.Set(0x1209, 40)
	d.Set(0x120A, 80)
	d.Set(0x120B, 60)
	d.Set(0x1300, 0xFFFF) // -1: follow HomeTotalPower
	d.Set(0x1301, 0, 0)

	// operating information
	d.Set(0x1202, 5, 0)
	d.Set(0x1205, 35)
	d.Set(0x1400, 3600, 0)
	d.Set(0x1402, 0, 0)
	d.Set(0x1404, 52)
	d.Set(0x1405, 0x8001)
	d.Set(0x1406, 0x8000)
	d.Set(0x1407, 60)
	d.Set(0x1408, 0b001)
	d.Set(0x1409, 100, 0)
	d.Set(0x140B, 200, 0)
	d.Set(0x140D, 300, 0)

	for i := uint16(0); i < 10; i++ {
		d.Set(0x1500+4*i, 0, 0, 0, 0)
	}
	return d
}

// Set stores consecutive words starting at address.
func (d *Device) Set(address uint16, words ...uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, w := range words {
		d.regs[address+uint16(i)] = w
	}
}

// SetText stores a 16-word text field at address.
func (d *Device) SetText(address uint16, s string) {
	w := codec.EncodeText32(s)
	d.Set(address, w[:]...)
}

// Get returns the word at address and whether it is mapped.
func (d *Device) Get(address uint16) (uint16, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.regs[address]
	return w, ok
}

// FailAt makes every transaction starting at address fail with err until cleared with nil.
func (d *Device) FailAt(address uint16, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.fail, address)
		return
	}
	d.fail[address] = err
}

// FailNext makes the next transaction fail with err.
func (d *Device) FailNext(err error) {
	d.mu.Lock()
	d.next = err
	d.mu.Unlock()
}

// Calls returns a copy of the transaction log.
func (d *Device) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Reset clears the transaction log.
func (d *Device) Reset() {
	d.mu.Lock()
	d.calls = nil
	d.mu.Unlock()
}

// ReadRegisters implements session.Transport.
func (d *Device) ReadRegisters(address, count uint16) ([]uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, Call{Address: address, Count: count})
	if err := d.injected(address); err != nil {
		return nil, err
	}

	out := make([]uint16, count)
	for i := range out {
		w, ok := d.regs[address+uint16(i)]
		if !ok {
			return nil, illegalAddress(address + uint16(i))
		}
		out[i] = w
	}
	return out, nil
}

// WriteRegisters implements session.Transport.
func (d *Device) WriteRegisters(address uint16, words []uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, Call{
		Write:   true,
		Address: address,
		Words:   append([]uint16(nil), words...),
		Count:   uint16(len(words)),
	})
	if err := d.injected(address); err != nil {
		return err
	}

	for i, w := range words {
		d.regs[address+uint16(i)] = w
	}
	return nil
}

func (d *Device) injected(address uint16) error {
	if d.next != nil {
		err := d.next
		d.next = nil
		return err
	}
	return d.fail[address]
}

func illegalAddress(address uint16) error {
	return &status.Error{
		Code: status.IllegalAddress,
		Err:  fmt.Errorf("%w: 0x%04X", ErrNoRegister, address),
	}
}
