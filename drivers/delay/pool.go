package delay

import "blinkcode-go/errcode"

// Pool hands out the slots of a Timers to named owners.
type Pool struct {
	*Timers
	owners [NumSlots]string
}

// NewPool wraps t. Every slot starts free.
func NewPool(t *Timers) *Pool { return &Pool{Timers: t} }

// Claim reserves the lowest free slot for owner and leaves it expired.
func (p *Pool) Claim(owner string) (int, error) {
	if owner == "" {
		return -1, errcode.InvalidParams
	}
	for i := range p.owners {
		if p.owners[i] == "" {
			p.owners[i] = owner
			p.Set(i, 0)
			return i, nil
		}
	}
	return -1, errcode.NoTimerSlot
}

// Release frees slot if owner holds it.
func (p *Pool) Release(owner string, slot int) {
	if slot < 0 || slot >= NumSlots {
		return
	}
	if p.owners[slot] == owner {
		p.owners[slot] = ""
	}
}

// Owner returns the current holder of slot, "" when free.
func (p *Pool) Owner(slot int) string {
	if slot < 0 || slot >= NumSlots {
		return ""
	}
	return p.owners[slot]
}
