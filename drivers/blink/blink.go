// Package blink plays on/off patterns on a single LED without blocking.
//
//	f := blink.New(pin, timers, slot)
//	f.SetBlink(p)      // LED off, playback restarts from step 0
//	for {
//		f.Update()     // call from the control loop as often as convenient
//	}
//
// The FSM never sleeps: Update asks the timer slot whether the current step
// is due and returns immediately otherwise. All state is owned by the
// caller's loop; the FSM is not safe for concurrent use.
package blink

// Pin is the LED output.
type Pin interface {
	Set(on bool)
}

// Timers is the countdown service the FSM arms and polls.
type Timers interface {
	Set(slot int, ms uint32)
	IsDone(slot int) bool
}

// State is the FSM phase.
type State uint8

const (
	Idle State = iota
	PhaseOn
	PhaseOff
)

func (s State) String() string {
	switch s {
	case PhaseOn:
		return "on"
	case PhaseOff:
		return "off"
	default:
		return "idle"
	}
}

// FSM is a timer-driven pattern player for one LED.
type FSM struct {
	pin    Pin
	timers Timers
	slot   int

	pattern Pattern
	cursor  int
	state   State
	on      bool
	done    bool
}

// New returns an idle FSM bound to pin and a timer slot. The LED is driven
// off.
func New(pin Pin, timers Timers, slot int) *FSM {
	f := &FSM{pin: pin, timers: timers, slot: slot}
	f.SetBlink(Pattern{})
	return f
}

// SetBlink replaces the pattern and restarts playback. The LED goes off
// immediately; the empty Pattern stops blinking.
func (f *FSM) SetBlink(p Pattern) {
	f.pattern = p
	f.cursor = 0
	f.state = Idle
	f.done = false
	f.timers.Set(f.slot, 0)
	f.drive(false)
}

// Update advances the pattern by at most one step when the timer slot has
// expired.
func (f *FSM) Update() {
	if f.pattern.Empty() || f.done {
		return
	}
	if !f.timers.IsDone(f.slot) {
		return
	}
	if f.state == Idle {
		f.state = PhaseOff
		f.timers.Set(f.slot, f.pattern.Step(0).AfterMs)
		return
	}

	st := f.pattern.Step(f.cursor)
	f.drive(st.On)
	if st.On {
		f.state = PhaseOn
	} else {
		f.state = PhaseOff
	}

	f.cursor++
	if f.cursor == f.pattern.Len() {
		if !f.pattern.Loop() {
			f.done = true
			f.state = Idle
			return
		}
		f.cursor = 0
	}
	f.timers.Set(f.slot, f.pattern.Step(f.cursor).AfterMs)
}

func (f *FSM) drive(on bool) {
	f.on = on
	f.pin.Set(on)
}

func (f *FSM) State() State     { return f.state }
func (f *FSM) Cursor() int      { return f.cursor }
func (f *FSM) On() bool         { return f.on }
func (f *FSM) Pattern() Pattern { return f.pattern }
func (f *FSM) Slot() int        { return f.slot }

// Active reports whether a pattern is playing (set, and not finished).
func (f *FSM) Active() bool { return !f.pattern.Empty() && !f.done }
