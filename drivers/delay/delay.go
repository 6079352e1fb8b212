// Package delay provides a small slot-based countdown service:
//
//	t.Set(0, 250)      // arm slot 0 to expire 250 ms from now
//	if t.IsDone(0) {}  // poll; never blocks, no side effects
//
// Time comes from a Counter. On a board the counter is either a tick count
// advanced from a periodic timer interrupt (TickCounter) or the monotonic
// clock (ClockFunc). Simulations drive a TickCounter by hand.
//
// Slot indices outside [0, NumSlots) are programming errors and panic.
package delay

import "sync/atomic"

// NumSlots is the number of independent timer slots per Timers.
const NumSlots = 8

// Counter reports a free-running millisecond count.
type Counter interface {
	NowMs() int64
}

// ClockFunc adapts a millisecond clock function to a Counter.
type ClockFunc func() int64

func (f ClockFunc) NowMs() int64 { return f() }

// TickCounter is a millisecond counter advanced externally. Tick is safe to
// call from an interrupt handler.
type TickCounter struct {
	ms atomic.Int64
}

// Tick advances the counter by one millisecond.
func (c *TickCounter) Tick() { c.ms.Add(1) }

// Advance moves the counter forward by n milliseconds.
func (c *TickCounter) Advance(n uint32) { c.ms.Add(int64(n)) }

func (c *TickCounter) NowMs() int64 { return c.ms.Load() }

type entry struct {
	start int64
	dur   uint32
}

// Timers is the countdown service. It is not safe for concurrent use; the
// owner polls it from a single loop.
type Timers struct {
	ctr   Counter
	slots [NumSlots]entry
}

// New returns Timers reading time from ctr. All slots start expired.
func New(ctr Counter) *Timers {
	return &Timers{ctr: ctr}
}

// Set arms slot to expire ms milliseconds from now. Set(slot, 0) leaves the
// slot expired.
func (t *Timers) Set(slot int, ms uint32) {
	s := t.at(slot)
	s.start = t.ctr.NowMs()
	s.dur = ms
}

// IsDone reports whether the armed duration has elapsed.
func (t *Timers) IsDone(slot int) bool {
	return t.Remaining(slot) == 0
}

// Remaining returns the milliseconds left on slot, 0 once expired.
func (t *Timers) Remaining(slot int) uint32 {
	s := t.at(slot)
	elapsed := t.ctr.NowMs() - s.start
	if elapsed < 0 {
		// counter went backwards (e.g. reset); treat as just armed
		elapsed = 0
	}
	if elapsed >= int64(s.dur) {
		return 0
	}
	return s.dur - uint32(elapsed)
}

func (t *Timers) at(slot int) *entry {
	if slot < 0 || slot >= NumSlots {
		panic("delay: slot out of range")
	}
	return &t.slots[slot]
}
