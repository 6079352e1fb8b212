//go:build rp2040

package provider

import (
	"machine"

	"blinkcode-go/services/hal/internal/core"
)

// Expander bus wiring (I2C0 on the Pico's default pins).
const (
	i2cSDA = machine.GPIO4
	i2cSCL = machine.GPIO5
	i2cHz  = 400_000

	gpioMax = 29
)

type rp2GPIO struct {
	p machine.Pin
	n int
}

func (r *rp2GPIO) Number() int { return r.n }

func (r *rp2GPIO) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2GPIO) Set(b bool) { r.p.Set(b) }
func (r *rp2GPIO) Get() bool  { return r.p.Get() }
func (r *rp2GPIO) Toggle()    { r.p.Set(!r.p.Get()) }

func machinePins(n int) (core.GPIOHandle, bool) {
	if n < 0 || n > gpioMax {
		return nil, false
	}
	return &rp2GPIO{p: machine.Pin(n), n: n}, true
}

// NewResources configures I2C0 for expanders and returns the board
// resources. A bus that fails to configure leaves expanders unavailable.
func NewResources() core.Resources {
	i2cSDA.Configure(machine.PinConfig{Mode: machine.PinI2C})
	i2cSCL.Configure(machine.PinConfig{Mode: machine.PinI2C})
	err := machine.I2C0.Configure(machine.I2CConfig{
		SCL:       i2cSCL,
		SDA:       i2cSDA,
		Frequency: i2cHz,
	})
	if err != nil {
		println("[hal] i2c0 configure failed:", err.Error())
		return Resources(NewRegistry(machinePins, nil), monoClock)
	}
	return Resources(NewRegistry(machinePins, machine.I2C0), monoClock)
}
