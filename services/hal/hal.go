// Package hal is the hardware abstraction service. It builds LED devices
// from the retained config/hal message and serves their capabilities under
// hal/cap/io/led/<name>/...
package hal

import (
	"context"

	"blinkcode-go/bus"
	"blinkcode-go/services/hal/internal/core"
	"blinkcode-go/services/hal/internal/provider"

	// Device builders register themselves.
	_ "blinkcode-go/services/hal/devices/led"
)

// Run serves the HAL on conn with the target's resources until ctx ends.
func Run(ctx context.Context, conn *bus.Connection) {
	run(ctx, conn, provider.NewResources())
}

func run(ctx context.Context, conn *bus.Connection, res core.Resources) {
	core.NewHAL(conn, res).Run(ctx)
	if c, ok := res.Reg.(interface{ Close() }); ok {
		c.Close()
	}
}

// Control returns the control topic for verb on the LED capability name.
func Control(name, verb string) bus.Topic {
	return core.CapCtrl("io", "led", name, verb)
}

// Value returns the retained value topic of the LED capability name.
func Value(name string) bus.Topic {
	return core.CapBase("io", "led", name).Append("value")
}

// State is the retained HAL state topic.
func State() bus.Topic { return bus.T("hal", "state") }
