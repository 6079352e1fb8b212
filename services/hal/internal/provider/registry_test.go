//go:build !rp2040

package provider

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers/tester"

	"blinkcode-go/drivers/delay"
	"blinkcode-go/errcode"
)

const (
	regIODIRA = 0x00
	regIODIRB = 0x01
	regGPIOA  = 0x12
	regGPIOB  = 0x13
)

// newExpanderBus returns a mock bus with one MCP23017 at addr in its reset
// state (all pins inputs).
func newExpanderBus(c *qt.C, addr uint8) (*tester.I2CBus, *tester.I2CDevice8) {
	bus := tester.NewI2CBus(c)
	fdev := bus.NewDevice(addr)
	fdev.Registers[regIODIRA] = 0xff
	fdev.Registers[regIODIRB] = 0xff
	return bus, fdev
}

func TestClaimGPIO(t *testing.T) {
	c := qt.New(t)
	r := NewRegistry(VirtualPins, nil)

	h, err := r.ClaimGPIO("led0", 25)
	c.Assert(err, qt.IsNil)
	c.Assert(h.Number(), qt.Equals, 25)

	_, err = r.ClaimGPIO("led1", 25)
	c.Assert(err, qt.Equals, errcode.PinInUse)

	// Re-claim by the owner returns the same handle.
	h2, err := r.ClaimGPIO("led0", 25)
	c.Assert(err, qt.IsNil)
	c.Assert(h2, qt.Equals, h)

	r.ReleaseGPIO("led1", 25) // not the owner: no effect
	_, err = r.ClaimGPIO("led1", 25)
	c.Assert(err, qt.Equals, errcode.PinInUse)

	r.ReleaseGPIO("led0", 25)
	_, err = r.ClaimGPIO("led1", 25)
	c.Assert(err, qt.IsNil)

	_, err = r.ClaimGPIO("x", HostPins)
	c.Assert(err, qt.Equals, errcode.UnknownPin)
}

func TestVirtualPin(t *testing.T) {
	c := qt.New(t)
	h, ok := VirtualPins(3)
	c.Assert(ok, qt.IsTrue)
	c.Assert(h.ConfigureOutput(true), qt.IsNil)
	c.Assert(h.Get(), qt.IsTrue)
	h.Toggle()
	c.Assert(h.Get(), qt.IsFalse)
	h.Set(true)
	c.Assert(h.Get(), qt.IsTrue)
}

func TestExpanderWithoutBus(t *testing.T) {
	c := qt.New(t)
	r := NewRegistry(VirtualPins, nil)
	_, err := r.ClaimExpanderPin("led", 0x20, 0)
	c.Assert(err, qt.Equals, errcode.UnknownBus)
}

func TestExpanderPin(t *testing.T) {
	c := qt.New(t)
	bus, fdev := newExpanderBus(c, 0x20)
	r := NewRegistry(VirtualPins, bus)
	defer r.Close()

	h, err := r.ClaimExpanderPin("status", 0x20, 9)
	c.Assert(err, qt.IsNil)
	c.Assert(h.Number(), qt.Equals, 9)

	c.Assert(h.ConfigureOutput(false), qt.IsNil)
	// Pin 9 is bit 1 of port B; 0 in IODIR means output.
	c.Assert(fdev.Registers[regIODIRB]&0b10, qt.Equals, uint8(0))
	c.Assert(fdev.Registers[regIODIRA], qt.Equals, uint8(0xff))

	h.Set(true)
	c.Assert(fdev.Registers[regGPIOB]&0b10, qt.Not(qt.Equals), uint8(0))
	c.Assert(h.Get(), qt.IsTrue)

	h.Toggle()
	c.Assert(fdev.Registers[regGPIOB]&0b10, qt.Equals, uint8(0))
	c.Assert(fdev.Registers[regGPIOA], qt.Equals, uint8(0))
}

func TestExpanderOwnership(t *testing.T) {
	c := qt.New(t)
	bus, _ := newExpanderBus(c, 0x21)
	r := NewRegistry(VirtualPins, bus)
	defer r.Close()

	_, err := r.ClaimExpanderPin("a", 0x21, 0)
	c.Assert(err, qt.IsNil)
	_, err = r.ClaimExpanderPin("b", 0x21, 0)
	c.Assert(err, qt.Equals, errcode.PinInUse)
	_, err = r.ClaimExpanderPin("b", 0x21, 1)
	c.Assert(err, qt.IsNil)

	r.ReleaseExpanderPin("a", 0x21, 0)
	_, err = r.ClaimExpanderPin("b", 0x21, 0)
	c.Assert(err, qt.IsNil)

	_, err = r.ClaimExpanderPin("b", 0x21, 16)
	c.Assert(err, qt.Equals, errcode.UnknownPin)
	_, err = r.ClaimExpanderPin("b", 0x50, 0)
	c.Assert(err, qt.Equals, errcode.InvalidParams)
}

func TestResourcesTimerPool(t *testing.T) {
	c := qt.New(t)
	var ctr delay.TickCounter
	res := Resources(NewRegistry(VirtualPins, nil), &ctr)

	slot, err := res.Timers.Claim("led0")
	c.Assert(err, qt.IsNil)
	res.Timers.Set(slot, 10)
	c.Assert(res.Timers.IsDone(slot), qt.IsFalse)
	ctr.Advance(10)
	c.Assert(res.Timers.IsDone(slot), qt.IsTrue)
}

func TestNewResourcesHost(t *testing.T) {
	c := qt.New(t)
	res := NewResources()
	c.Assert(res.Reg, qt.Not(qt.IsNil))
	c.Assert(res.Timers, qt.Not(qt.IsNil))
	_, err := res.Reg.ClaimExpanderPin("x", 0x20, 0)
	c.Assert(err, qt.Equals, errcode.UnknownBus)
}
