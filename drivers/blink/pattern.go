package blink

import "blinkcode-go/errcode"

// Step drives the LED to On once AfterMs has elapsed since the previous
// step was applied (or since playback started, for the first step).
type Step struct {
	On      bool   `json:"on" toml:"on"`
	AfterMs uint32 `json:"after_ms" toml:"after_ms"`
}

// Pattern is an immutable step sequence. The zero Pattern has no steps and
// means "no blink".
//
// Steps alternate levels starting with On and the count is even, so every
// step toggles the output and a looping pattern re-enters step 0 from off.
type Pattern struct {
	steps []Step
	loop  bool
}

// NewPattern validates steps and returns a Pattern. An empty step list yields
// the empty Pattern.
func NewPattern(loop bool, steps ...Step) (Pattern, error) {
	if len(steps) == 0 {
		return Pattern{}, nil
	}
	if len(steps)%2 != 0 {
		return Pattern{}, errcode.InvalidPattern
	}
	for i, s := range steps {
		if s.On != (i%2 == 0) {
			return Pattern{}, errcode.InvalidPattern
		}
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return Pattern{steps: cp, loop: loop}, nil
}

// FromDurations builds a Pattern from alternating delays in milliseconds,
// the first before switching on, the next before switching off, and so on:
// FromDurations(true, 500, 300) waits 500 ms, turns on, waits 300 ms, turns
// off, and repeats. An odd count is rejected.
func FromDurations(loop bool, onOff ...uint32) (Pattern, error) {
	if len(onOff)%2 != 0 {
		return Pattern{}, errcode.InvalidPattern
	}
	steps := make([]Step, len(onOff))
	for i, ms := range onOff {
		steps[i] = Step{On: i%2 == 0, AfterMs: ms}
	}
	return NewPattern(loop, steps...)
}

func (p Pattern) Len() int        { return len(p.steps) }
func (p Pattern) Empty() bool     { return len(p.steps) == 0 }
func (p Pattern) Loop() bool      { return p.loop }
func (p Pattern) Step(i int) Step { return p.steps[i] }

// Steps returns a copy of the step list.
func (p Pattern) Steps() []Step {
	cp := make([]Step, len(p.steps))
	copy(cp, p.steps)
	return cp
}

// PeriodMs is the sum of all step delays: one full pass of the pattern.
func (p Pattern) PeriodMs() uint64 {
	var total uint64
	for _, s := range p.steps {
		total += uint64(s.AfterMs)
	}
	return total
}
