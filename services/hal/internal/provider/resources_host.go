//go:build !rp2040

package provider

import (
	"sync/atomic"

	"blinkcode-go/services/hal/internal/core"
)

// HostPins is the number of virtual GPIOs on a host build.
const HostPins = 30

// virtualPin is an in-memory output used off-target.
type virtualPin struct {
	n     int
	level atomic.Bool
}

func (v *virtualPin) Number() int                        { return v.n }
func (v *virtualPin) ConfigureOutput(initial bool) error { v.level.Store(initial); return nil }
func (v *virtualPin) Set(b bool)                         { v.level.Store(b) }
func (v *virtualPin) Get() bool                          { return v.level.Load() }
func (v *virtualPin) Toggle()                            { v.Set(!v.Get()) }

// VirtualPins is the host PinFactory.
func VirtualPins(n int) (core.GPIOHandle, bool) {
	if n < 0 || n >= HostPins {
		return nil, false
	}
	return &virtualPin{n: n}, true
}

// NewResources returns host resources: virtual pins, no expander bus and
// timers on the monotonic clock.
func NewResources() core.Resources {
	return Resources(NewRegistry(VirtualPins, nil), monoClock)
}
