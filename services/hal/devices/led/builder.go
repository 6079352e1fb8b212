package led

import (
	"context"

	"blinkcode-go/errcode"
	"blinkcode-go/services/hal/internal/core"
	"blinkcode-go/types"
)

const (
	TypeGPIO     = "gpio_led"
	TypeMCP23017 = "mcp23017_led"

	// DefaultExpanderAddr is the MCP23017 address with A0..A2 grounded.
	DefaultExpanderAddr = 0x20
)

func init() {
	core.RegisterBuilder(TypeGPIO, builder{backend: "gpio"})
	core.RegisterBuilder(TypeMCP23017, builder{backend: "mcp23017"})
}

type builder struct{ backend string }

func (b builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := parseParams(in.Params)
	if err != nil {
		return nil, err
	}
	if in.Res.Reg == nil || in.Res.Timers == nil || in.Res.Pub == nil {
		return nil, errcode.HALNotReady
	}

	var (
		h       core.GPIOHandle
		release func()
	)
	switch b.backend {
	case "mcp23017":
		if p.Addr == 0 {
			p.Addr = DefaultExpanderAddr
		}
		h, err = in.Res.Reg.ClaimExpanderPin(in.ID, p.Addr, p.Pin)
		release = func() { in.Res.Reg.ReleaseExpanderPin(in.ID, p.Addr, p.Pin) }
	default:
		h, err = in.Res.Reg.ClaimGPIO(in.ID, p.Pin)
		release = func() { in.Res.Reg.ReleaseGPIO(in.ID, p.Pin) }
	}
	if err != nil {
		return nil, errcode.Wrap("led.build", errcode.Of(err), err)
	}

	slot, err := in.Res.Timers.Claim(in.ID)
	if err != nil {
		release()
		return nil, err
	}

	return newDevice(in.ID, b.backend, p, h, in.Res.Timers, slot, in.Res.Pub, func() {
		in.Res.Timers.Release(in.ID, slot)
		release()
	}), nil
}

// parseParams accepts typed params or an object decoded from JSON config.
func parseParams(v any) (types.LEDParams, error) {
	switch p := v.(type) {
	case types.LEDParams:
		return p, validate(p)
	case map[string]any:
		var out types.LEDParams
		n, ok := p["pin"].(float64)
		if !ok {
			return out, errcode.InvalidParams
		}
		out.Pin = int(n)
		if b, ok := p["active_low"].(bool); ok {
			out.ActiveLow = b
		}
		if b, ok := p["initial"].(bool); ok {
			out.Initial = b
		}
		if s, ok := p["name"].(string); ok {
			out.Name = s
		}
		if a, ok := p["addr"].(float64); ok {
			if a < 0 || a > 0x7f {
				return out, errcode.InvalidParams
			}
			out.Addr = uint8(a)
		}
		return out, validate(out)
	default:
		return types.LEDParams{}, errcode.InvalidParams
	}
}

func validate(p types.LEDParams) error {
	if p.Pin < 0 {
		return errcode.InvalidParams
	}
	return nil
}
