package provider

import (
	"errors"

	"blinkcode-go/errcode"

	"tinygo.org/x/drivers/mcp23017"
)

// expander tracks pin ownership on one MCP23017.
type expander struct {
	addr   uint8
	dev    *mcp23017.Device
	owners [mcp23017.PinCount]string
}

// expanderPin is a GPIO handle backed by an expander pin. The handle
// interface has no error path for writes, so failures are logged and the
// last requested level is kept.
type expanderPin struct {
	p     mcp23017.Pin
	addr  uint8
	n     int
	level bool
}

func (e *expanderPin) Number() int { return e.n }

func (e *expanderPin) ConfigureOutput(initial bool) error {
	if err := e.p.SetMode(mcp23017.Output); err != nil {
		return errcode.Wrap("mcp23017.configure", errcode.Error, err)
	}
	e.Set(initial)
	return nil
}

func (e *expanderPin) Set(b bool) {
	e.level = b
	if err := e.p.Set(b); err != nil {
		println("[hal] mcp23017", e.addr, "pin", e.n, "write failed:", err.Error())
	}
}

func (e *expanderPin) Get() bool {
	v, err := e.p.Get()
	if err != nil {
		return e.level
	}
	return v
}

func (e *expanderPin) Toggle() { e.Set(!e.Get()) }

func openExpander(bus *sharedI2C, addr uint8) (*expander, error) {
	dev, err := mcp23017.NewI2C(bus, addr)
	switch {
	case errors.Is(err, mcp23017.ErrInvalidHWAddress):
		return nil, errcode.InvalidParams
	case err != nil:
		return nil, errcode.Wrap("mcp23017.open", errcode.UnknownBus, err)
	}
	return &expander{addr: addr, dev: dev}, nil
}
