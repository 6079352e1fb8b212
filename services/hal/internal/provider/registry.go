package provider

import (
	"sync"

	"blinkcode-go/drivers/delay"
	"blinkcode-go/errcode"
	"blinkcode-go/services/hal/internal/core"
	"blinkcode-go/x/timex"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/mcp23017"
)

var _ core.ResourceRegistry = (*Registry)(nil)

// PinFactory returns the GPIO handle for a native pin, false when the board
// has no such pin.
type PinFactory func(n int) (core.GPIOHandle, bool)

// Registry owns native pins, the expander bus and the expanders on it.
type Registry struct {
	mu sync.Mutex

	newPin    PinFactory
	pins      map[int]core.GPIOHandle // cached handles
	pinOwners map[int]string

	bus  *sharedI2C // nil => no expander bus
	exps map[uint8]*expander
}

// NewRegistry builds a registry. bus may be nil when the board has no
// expander bus; expander claims then fail with unknown_bus.
func NewRegistry(newPin PinFactory, bus drivers.I2C) *Registry {
	r := &Registry{
		newPin:    newPin,
		pins:      make(map[int]core.GPIOHandle),
		pinOwners: make(map[int]string),
		exps:      make(map[uint8]*expander),
	}
	if bus != nil {
		r.bus = &sharedI2C{o: newI2COwner(bus), timeout: DefaultI2CTimeout}
	}
	return r
}

func (r *Registry) ClaimGPIO(devID string, n int) (core.GPIOHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.pins[n]
	if !ok {
		if h, ok = r.newPin(n); !ok {
			return nil, errcode.UnknownPin
		}
		r.pins[n] = h
	}
	if owner, inUse := r.pinOwners[n]; inUse && owner != devID {
		return nil, errcode.PinInUse
	}
	r.pinOwners[n] = devID
	return h, nil
}

func (r *Registry) ReleaseGPIO(devID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pinOwners[n] == devID {
		delete(r.pinOwners, n)
	}
}

func (r *Registry) ClaimExpanderPin(devID string, addr uint8, n int) (core.GPIOHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bus == nil {
		return nil, errcode.UnknownBus
	}
	if n < 0 || n >= mcp23017.PinCount {
		return nil, errcode.UnknownPin
	}
	x, ok := r.exps[addr]
	if !ok {
		var err error
		if x, err = openExpander(r.bus, addr); err != nil {
			return nil, err
		}
		r.exps[addr] = x
	}
	if owner := x.owners[n]; owner != "" && owner != devID {
		return nil, errcode.PinInUse
	}
	x.owners[n] = devID
	return &expanderPin{p: x.dev.Pin(n), addr: addr, n: n}, nil
}

func (r *Registry) ReleaseExpanderPin(devID string, addr uint8, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.exps[addr]
	if !ok || n < 0 || n >= mcp23017.PinCount {
		return
	}
	if x.owners[n] == devID {
		x.owners[n] = ""
	}
}

// Close stops the expander bus worker.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bus != nil {
		r.bus.o.stop()
		r.bus = nil
	}
}

// Resources bundles a registry with a timer pool reading clk.
func Resources(reg *Registry, clk delay.Counter) core.Resources {
	return core.Resources{Reg: reg, Timers: delay.NewPool(delay.New(clk))}
}

// monoClock is the default timer source on every target.
var monoClock = delay.ClockFunc(timex.MonoMs)
