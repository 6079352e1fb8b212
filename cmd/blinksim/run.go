package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"blinkcode-go/drivers/blink"
	"blinkcode-go/drivers/delay"
	"blinkcode-go/errcode"
	"blinkcode-go/services/hal/devices/led"
	"blinkcode-go/types"
	"blinkcode-go/x/timex"
)

type runOpts struct {
	text, code string
	steps      []uint
	unit, dur  time.Duration
	once       bool
	file, name string
}

func newRunCmd() *cobra.Command {
	var o runOpts
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a pattern and print the LED timeline",
		Example: `  blinksim run --text SOS --unit 100ms --for 5s
  blinksim run --steps 500,300 --for 2s
  blinksim run --presets presets.toml --preset sos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := o.request()
			if err != nil {
				return err
			}
			p, err := patternFor(b)
			if err != nil {
				return err
			}
			printTimeline(cmd.OutOrStdout(), p, Simulate(p, timex.Ms(o.dur)))
			return nil
		},
	}
	addPatternFlags(cmd.Flags(), &o)
	cmd.MarkFlagsMutuallyExclusive("text", "code", "steps", "preset")
	cmd.MarkFlagsRequiredTogether("presets", "preset")
	return cmd
}

func addPatternFlags(f *pflag.FlagSet, o *runOpts) {
	f.StringVar(&o.text, "text", "", "text to send in Morse")
	f.StringVar(&o.code, "code", "", `dot/dash code, e.g. "... --- ..."`)
	f.UintSliceVar(&o.steps, "steps", nil, "raw step delays in ms (before on, before off, ...)")
	f.DurationVar(&o.unit, "unit", blink.DefaultUnitMs*time.Millisecond, "Morse unit (dot length)")
	f.DurationVar(&o.dur, "for", 10*time.Second, "simulated run time")
	f.BoolVar(&o.once, "once", false, "play the pattern once instead of looping")
	f.StringVarP(&o.file, "presets", "p", "", "presets file")
	f.StringVar(&o.name, "preset", "", "preset name from --presets")
}

func (o runOpts) request() (types.LEDBlink, error) {
	if o.name != "" {
		presets, err := LoadPresets(o.file)
		if err != nil {
			return types.LEDBlink{}, err
		}
		p, ok := presets[o.name]
		if !ok {
			return types.LEDBlink{}, &errcode.E{C: errcode.InvalidParams, Op: "run", Msg: "no preset " + o.name}
		}
		return p.Blink()
	}
	b := types.LEDBlink{UnitMs: timex.Ms(o.unit), Once: o.once}
	switch {
	case o.text != "":
		b.Encoding, b.Text = types.EncodingText, o.text
	case o.code != "":
		b.Encoding, b.Code = types.EncodingCode, o.code
	case len(o.steps) > 0:
		b.Encoding = types.EncodingSteps
		for _, s := range o.steps {
			if uint64(s) > 1<<32-1 {
				return b, &errcode.E{C: errcode.InvalidParams, Op: "run", Msg: "step too long"}
			}
			b.Durations = append(b.Durations, uint32(s))
		}
	default:
		return b, &errcode.E{C: errcode.InvalidParams, Op: "run", Msg: "one of --text, --code, --steps, --preset is required"}
	}
	return b, nil
}

func patternFor(b types.LEDBlink) (blink.Pattern, error) { return led.PatternFor(b) }

// Transition is one LED level change at a simulated time.
type Transition struct {
	AtMs int64
	On   bool
}

type recordingPin struct {
	ctr *delay.TickCounter
	out []Transition
	on  bool
}

func (r *recordingPin) Set(on bool) {
	if on == r.on {
		return
	}
	r.on = on
	r.out = append(r.out, Transition{AtMs: r.ctr.NowMs(), On: on})
}

// Simulate plays p for forMs simulated milliseconds, updating the FSM once
// per millisecond tick, and returns the LED level changes.
func Simulate(p blink.Pattern, forMs uint32) []Transition {
	var ctr delay.TickCounter
	pin := &recordingPin{ctr: &ctr}
	fsm := blink.New(pin, delay.New(&ctr), 0)
	fsm.SetBlink(p)
	fsm.Update() // arm the first step
	for {
		fsm.Update()
		if ctr.NowMs() >= int64(forMs) {
			return pin.out
		}
		ctr.Tick()
	}
}

func printTimeline(w io.Writer, p blink.Pattern, tr []Transition) {
	mode := "looping"
	if !p.Loop() {
		mode = "once"
	}
	fmt.Fprintf(w, "pattern: %d steps, period %d ms, %s\n", p.Len(), p.PeriodMs(), mode)
	for _, t := range tr {
		level := "off"
		if t.On {
			level = "on"
		}
		fmt.Fprintf(w, "%8d ms  %s\n", t.AtMs, level)
	}
}
