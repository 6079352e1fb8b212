package blink

import (
	"testing"

	"blinkcode-go/drivers/delay"
)

type fakePin struct {
	level  bool
	writes int
}

func (p *fakePin) Set(on bool) { p.level = on; p.writes++ }

type rig struct {
	ctr delay.TickCounter
	pin fakePin
	fsm *FSM
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{}
	r.fsm = New(&r.pin, delay.New(&r.ctr), 0)
	return r
}

// runUntil advances simulated time one millisecond at a time, calling Update
// on every tick, and stops at ms.
func (r *rig) runUntil(ms int64) {
	for r.ctr.NowMs() < ms {
		r.ctr.Tick()
		r.fsm.Update()
	}
}

func mustDurations(t *testing.T, loop bool, ms ...uint32) Pattern {
	t.Helper()
	p, err := FromDurations(loop, ms...)
	if err != nil {
		t.Fatalf("FromDurations(%v): %v", ms, err)
	}
	return p
}

func TestSetBlinkResets(t *testing.T) {
	r := newRig(t)
	r.fsm.SetBlink(mustDurations(t, true, 10, 10, 10, 10))
	r.fsm.Update()
	r.runUntil(15) // mid-pattern, LED on, cursor advanced

	if !r.fsm.On() || r.fsm.Cursor() == 0 {
		t.Fatalf("precondition: on=%v cursor=%d", r.fsm.On(), r.fsm.Cursor())
	}

	for _, p := range []Pattern{{}, mustDurations(t, true, 1, 1), mustDurations(t, false, 50, 50)} {
		r.fsm.SetBlink(p)
		if r.fsm.On() || r.pin.level {
			t.Fatal("SetBlink must force the LED off")
		}
		if r.fsm.Cursor() != 0 || r.fsm.State() != Idle {
			t.Fatalf("cursor=%d state=%v after SetBlink", r.fsm.Cursor(), r.fsm.State())
		}
	}
}

func TestUpdateBeforeExpiryIsNoop(t *testing.T) {
	r := newRig(t)
	r.fsm.SetBlink(mustDurations(t, true, 100, 100))
	r.fsm.Update() // start: arms 100 ms

	writes := r.pin.writes
	for i := 0; i < 99; i++ {
		r.ctr.Tick()
		for j := 0; j < 5; j++ {
			r.fsm.Update()
		}
		if r.fsm.On() || r.fsm.Cursor() != 0 || r.pin.writes != writes {
			t.Fatalf("state changed before expiry at %d ms", r.ctr.NowMs())
		}
	}
}

func TestOneUpdateAfterExpiryTogglesOnce(t *testing.T) {
	r := newRig(t)
	r.fsm.SetBlink(mustDurations(t, true, 20, 30, 40, 50))
	r.fsm.Update()

	prevOn, prevCursor := r.fsm.On(), r.fsm.Cursor()
	for n := 0; n < 12; n++ {
		r.ctr.Advance(1000) // well past any step
		writes := r.pin.writes
		r.fsm.Update()

		if r.pin.writes != writes+1 {
			t.Fatalf("step %d: %d pin writes, want 1", n, r.pin.writes-writes)
		}
		if r.fsm.On() == prevOn {
			t.Fatalf("step %d: LED did not toggle", n)
		}
		want := (prevCursor + 1) % 4
		if r.fsm.Cursor() != want {
			t.Fatalf("step %d: cursor %d, want %d", n, r.fsm.Cursor(), want)
		}
		prevOn, prevCursor = r.fsm.On(), r.fsm.Cursor()

		// A second call in the same instant must not advance again.
		r.fsm.Update()
		if r.fsm.Cursor() != prevCursor {
			t.Fatalf("step %d: advanced twice without a new expiry", n)
		}
	}
}

func TestEmptyPatternStaysOff(t *testing.T) {
	r := newRig(t)
	r.fsm.SetBlink(Pattern{})
	for i := 0; i < 2000; i++ {
		r.ctr.Tick()
		r.fsm.Update()
		if r.pin.level {
			t.Fatalf("LED turned on at %d ms with empty pattern", r.ctr.NowMs())
		}
	}
	if r.fsm.State() != Idle || r.fsm.Active() {
		t.Fatalf("state=%v active=%v", r.fsm.State(), r.fsm.Active())
	}
}

func TestOnOffScenario(t *testing.T) {
	r := newRig(t)
	r.fsm.SetBlink(mustDurations(t, true, 500, 300))
	if r.pin.level {
		t.Fatal("LED on at t=0")
	}
	r.fsm.Update() // t=0

	r.runUntil(499)
	if r.pin.level {
		t.Fatal("LED on before t=500")
	}
	r.runUntil(500)
	if !r.pin.level || r.fsm.State() != PhaseOn {
		t.Fatalf("t=500: level=%v state=%v", r.pin.level, r.fsm.State())
	}
	r.runUntil(799)
	if !r.pin.level {
		t.Fatal("LED off before t=800")
	}
	r.runUntil(800)
	if r.pin.level || r.fsm.State() != PhaseOff {
		t.Fatalf("t=800: level=%v state=%v", r.pin.level, r.fsm.State())
	}
	// Looping: next on after another 500 ms.
	r.runUntil(1299)
	if r.pin.level {
		t.Fatal("LED on before t=1300")
	}
	r.runUntil(1300)
	if !r.pin.level {
		t.Fatal("loop did not restart at t=1300")
	}
}

func TestSecondPatternSupersedesFirst(t *testing.T) {
	r := newRig(t)
	r.fsm.SetBlink(mustDurations(t, true, 5, 5, 5, 5, 5, 5))
	r.fsm.Update()
	r.runUntil(12)

	b := mustDurations(t, true, 100, 40)
	r.fsm.SetBlink(b)
	r.fsm.Update()
	start := r.ctr.NowMs()

	r.runUntil(start + 99)
	if r.pin.level || r.fsm.Cursor() != 0 {
		t.Fatalf("residual pattern A activity: level=%v cursor=%d", r.pin.level, r.fsm.Cursor())
	}
	r.runUntil(start + 100)
	if !r.pin.level || r.fsm.Cursor() != 1 {
		t.Fatalf("pattern B first step: level=%v cursor=%d", r.pin.level, r.fsm.Cursor())
	}
	if r.fsm.Pattern().Len() != b.Len() {
		t.Fatalf("pattern len = %d, want %d", r.fsm.Pattern().Len(), b.Len())
	}
}

func TestOneShotFinishesOff(t *testing.T) {
	r := newRig(t)
	r.fsm.SetBlink(mustDurations(t, false, 10, 20))
	r.fsm.Update()
	r.runUntil(10)
	if !r.pin.level {
		t.Fatal("expected on at 10 ms")
	}
	r.runUntil(30)
	if r.pin.level || r.fsm.Active() || r.fsm.State() != Idle {
		t.Fatalf("finished: level=%v active=%v state=%v", r.pin.level, r.fsm.Active(), r.fsm.State())
	}
	if r.fsm.Cursor() != 2 {
		t.Fatalf("cursor = %d, want len 2", r.fsm.Cursor())
	}
	writes := r.pin.writes
	r.runUntil(1000)
	if r.pin.writes != writes {
		t.Fatal("finished pattern kept driving the pin")
	}
}

func TestUsesOwnSlot(t *testing.T) {
	var ctr delay.TickCounter
	tm := delay.New(&ctr)
	var a, b fakePin
	fa := New(&a, tm, 1)
	fb := New(&b, tm, 2)
	fa.SetBlink(mustDurations(t, true, 10, 10))
	fb.SetBlink(mustDurations(t, true, 30, 10))
	fa.Update()
	fb.Update()
	ctr.Advance(10)
	fa.Update()
	fb.Update()
	if !a.level || b.level {
		t.Fatalf("a=%v b=%v, want a on and b off", a.level, b.level)
	}
	if fa.Slot() != 1 || fb.Slot() != 2 {
		t.Fatal("slot accessors")
	}
}
