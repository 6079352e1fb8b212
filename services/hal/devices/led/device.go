// Package led exposes an LED capability with pattern playback. The pattern
// player is polled by the HAL loop and never blocks it.
package led

import (
	"context"

	"blinkcode-go/drivers/blink"
	"blinkcode-go/errcode"
	"blinkcode-go/services/hal/internal/core"
	"blinkcode-go/types"
	"blinkcode-go/x/timex"
)

// output applies polarity and remembers the logical level last driven.
type output struct {
	h         core.GPIOHandle
	activeLow bool
	on        bool
}

func (o *output) Set(on bool) {
	o.on = on
	o.h.Set(on != o.activeLow)
}

func (o *output) physical(on bool) bool { return on != o.activeLow }

type Device struct {
	id      string
	backend string
	pinN    int
	initial bool

	out  *output
	fsm  *blink.FSM
	slot int
	pub  core.EventEmitter
	addr core.CapAddr

	release func()

	// last published output, for change detection in Poll
	lastOn     bool
	lastActive bool
	lastCursor int
}

func newDevice(id, backend string, p types.LEDParams, h core.GPIOHandle, timers blink.Timers, slot int, pub core.EventEmitter, release func()) *Device {
	name := p.Name
	if name == "" {
		name = id
	}
	out := &output{h: h, activeLow: p.ActiveLow}
	return &Device{
		id:      id,
		backend: backend,
		pinN:    p.Pin,
		initial: p.Initial,
		out:     out,
		fsm:     blink.New(out, timers, slot),
		slot:    slot,
		pub:     pub,
		addr:    core.CapAddr{Domain: "io", Kind: string(types.KindLED), Name: name},
		release: release,
	}
}

func (d *Device) ID() string { return d.id }

func (d *Device) Capabilities() []core.CapabilitySpec {
	return []core.CapabilitySpec{{
		Domain: d.addr.Domain,
		Kind:   types.KindLED,
		Name:   d.addr.Name,
		Info: types.Info{
			SchemaVersion: 1,
			Driver:        d.backend + "_led",
			Detail: types.LEDInfo{
				Pin:       d.pinN,
				ActiveLow: d.out.activeLow,
				Backend:   d.backend,
				TimerSlot: d.slot,
			},
		},
	}}
}

func (d *Device) Init(ctx context.Context) error {
	if err := d.out.h.ConfigureOutput(d.out.physical(d.initial)); err != nil {
		return err
	}
	d.out.on = d.initial
	d.emitValueNow()
	return nil
}

func (d *Device) Close() error {
	d.fsm.SetBlink(blink.Pattern{})
	if d.release != nil {
		d.release()
		d.release = nil
	}
	return nil
}

func (d *Device) Control(_ core.CapAddr, method string, payload any) (core.EnqueueResult, error) {
	switch method {
	case "set":
		p, code := core.As[types.LEDSet](payload)
		if code != "" {
			return core.EnqueueResult{Error: code}, nil
		}
		d.drive(p.On)
	case "toggle":
		d.drive(!d.out.on)
	case "read":
		d.emitValueNow()
	case "blink":
		p, code := core.As[types.LEDBlink](payload)
		if code != "" {
			return core.EnqueueResult{Error: code}, nil
		}
		pat, err := PatternFor(p)
		if err != nil {
			return core.EnqueueResult{Error: errcode.Of(err)}, nil
		}
		d.fsm.SetBlink(pat)
		d.fsm.Update()
		d.emitValueNow()
	case "stop":
		d.fsm.SetBlink(blink.Pattern{})
		d.emitValueNow()
	default:
		return core.EnqueueResult{Error: errcode.Unsupported}, nil
	}
	return core.EnqueueResult{OK: true}, nil
}

// drive cancels any pattern and holds the LED at level on.
func (d *Device) drive(on bool) {
	d.fsm.SetBlink(blink.Pattern{})
	if on {
		d.out.Set(true)
	}
	d.emitValueNow()
}

// Poll advances the pattern and publishes only when the output changed.
func (d *Device) Poll() {
	d.fsm.Update()
	if d.out.on != d.lastOn || d.fsm.Active() != d.lastActive || d.fsm.Cursor() != d.lastCursor {
		d.emitValueNow()
	}
}

func (d *Device) value() types.LEDValue {
	return types.LEDValue{
		On:       d.out.on,
		Blinking: d.fsm.Active(),
		State:    d.fsm.State().String(),
		Cursor:   d.fsm.Cursor(),
		Steps:    d.fsm.Pattern().Len(),
	}
}

// emitValueNow publishes the current value. A dropped event leaves the
// last* fields untouched so the next Poll retries.
func (d *Device) emitValueNow() {
	ok := d.pub.Emit(core.Event{
		Addr:    d.addr,
		Payload: d.value(),
		TSms:    timex.NowMs(),
	})
	if ok {
		d.lastOn, d.lastActive, d.lastCursor = d.out.on, d.fsm.Active(), d.fsm.Cursor()
	}
}

// PatternFor builds the pattern a blink request describes. Steps is the
// default encoding.
func PatternFor(b types.LEDBlink) (blink.Pattern, error) {
	loop := !b.Once
	tm := blink.Timing{UnitMs: b.UnitMs}
	switch b.Encoding {
	case types.EncodingSteps, "":
		return blink.FromDurations(loop, b.Durations...)
	case types.EncodingCode:
		return blink.ParseCode(b.Code, tm, loop)
	case types.EncodingText:
		return blink.EncodeText(b.Text, tm, loop)
	default:
		return blink.Pattern{}, errcode.InvalidParams
	}
}
