package core

import (
	"context"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/errcode"
	"blinkcode-go/types"
	"blinkcode-go/x/mathx"
	"blinkcode-go/x/timex"
)

const (
	eventQueueLen = 16

	// DefaultPollMs is the device poll interval when config/hal leaves it 0.
	DefaultPollMs = 5
	MaxPollMs     = 1000
)

type HAL struct {
	conn *bus.Connection
	res  Resources

	// Device registry, in build order for polling.
	dev   map[string]Device
	order []string

	// Capability index: address -> devID
	capIndex map[CapAddr]string

	cfgSub  *bus.Subscription
	ctrlSub *bus.Subscription

	poll   *time.Ticker
	pollMs uint32

	// Single-threaded publication of device events
	evCh chan Event
}

func NewHAL(conn *bus.Connection, res Resources) *HAL {
	h := &HAL{
		conn:     conn,
		res:      res,
		dev:      map[string]Device{},
		capIndex: map[CapAddr]string{},
		evCh:     make(chan Event, eventQueueLen),
	}
	// HAL provides the emitter to devices.
	h.res.Pub = h
	return h
}

// Run serves config/hal and capability controls until ctx is cancelled.
// Devices are built, controlled, polled and closed on this goroutine only.
func (h *HAL) Run(ctx context.Context) {
	h.cfgSub = h.conn.Subscribe(topicConfigHAL())
	h.ctrlSub = h.conn.Subscribe(ctrlWildcard())
	defer h.conn.Unsubscribe(h.cfgSub)
	defer h.conn.Unsubscribe(h.ctrlSub)
	defer h.closeAll()

	h.pubHALState("idle", "awaiting_config")

	var tick <-chan time.Time
	ready := false
	for {
		select {
		case <-ctx.Done():
			if h.poll != nil {
				h.poll.Stop()
			}
			h.pubHALState("stopped", "context_cancelled")
			return
		case msg := <-h.cfgSub.Channel():
			v, ok := msg.Payload.(types.HALConfig)
			if !ok {
				println("[hal] ignoring config of unexpected type")
				continue
			}
			// applyConfig is additive and idempotent for existing devices.
			h.applyConfig(ctx, v)
			tick = h.setPoll(v.PollMs)
			if !ready {
				ready = true
				h.pubHALState("ready", "")
			}
		case m := <-h.ctrlSub.Channel():
			if !ready {
				// Reject controls until HAL has a configuration.
				h.replyErr(m, errcode.HALNotReady)
				continue
			}
			h.handleControl(m) // strictly non-blocking
		case <-tick:
			h.pollDevices()
		case ev := <-h.evCh:
			// All device→HAL telemetry is published from this goroutine.
			h.handleEvent(ev)
		}
	}
}

// setPoll (re)starts the poll ticker when the interval changes.
func (h *HAL) setPoll(ms uint32) <-chan time.Time {
	if ms == 0 {
		ms = DefaultPollMs
	}
	ms = mathx.Clamp(ms, 1, MaxPollMs)
	if h.poll == nil {
		h.poll = time.NewTicker(time.Duration(ms) * time.Millisecond)
	} else if ms != h.pollMs {
		h.poll.Reset(time.Duration(ms) * time.Millisecond)
	}
	h.pollMs = ms
	return h.poll.C
}

func (h *HAL) pollDevices() {
	for _, id := range h.order {
		if p, ok := h.dev[id].(Poller); ok {
			p.Poll()
		}
	}
	// Drain what the poll produced so values publish in the same pass.
	for {
		select {
		case ev := <-h.evCh:
			h.handleEvent(ev)
		default:
			return
		}
	}
}

func (h *HAL) applyConfig(ctx context.Context, cfg types.HALConfig) {
	for i := range cfg.Devices {
		dc := cfg.Devices[i]
		if _, exists := h.dev[dc.ID]; exists {
			continue
		}
		b, ok := lookupBuilder(dc.Type)
		if !ok {
			println("[hal] no builder for type:", dc.Type, "id:", dc.ID)
			continue
		}
		dev, err := b.Build(ctx, BuilderInput{
			ID:     dc.ID,
			Type:   dc.Type,
			Params: dc.Params,
			Res:    h.res,
		})
		if err != nil {
			println("[hal] build failed for:", dc.ID, "err:", err.Error())
			continue
		}
		if err := dev.Init(ctx); err != nil {
			println("[hal] init failed for:", dc.ID, "err:", err.Error())
			_ = dev.Close()
			continue
		}
		h.dev[dev.ID()] = dev
		h.order = append(h.order, dev.ID())

		// Register capabilities, publish retained info + initial status:down
		for _, cs := range dev.Capabilities() {
			a := CapAddr{Domain: cs.Domain, Kind: string(cs.Kind), Name: cs.Name}
			if a.Domain == "" {
				a.Domain = defaultDomainFor(cs.Kind)
			}
			if a.Name == "" {
				a.Name = dev.ID()
			}
			if owner, dup := h.capIndex[a]; dup {
				println("[hal] capability", a.Name, "already owned by", owner)
				continue
			}
			h.capIndex[a] = dev.ID()

			h.conn.Publish(h.conn.NewMessage(capInfo(a), cs.Info, true))
			h.conn.Publish(h.conn.NewMessage(
				capStatus(a),
				types.CapabilityStatus{Link: types.LinkDown, TSms: timex.NowMs()},
				true,
			))
		}
	}
}

func (h *HAL) handleControl(msg *bus.Message) {
	// hal/cap/<domain>/<kind>/<name>/control/<verb>
	if msg.Topic.Len() != 7 {
		h.replyErr(msg, errcode.InvalidTopic)
		return
	}
	domain, _ := msg.Topic.At(2).(string)
	kind, _ := msg.Topic.At(3).(string)
	name, _ := msg.Topic.At(4).(string)
	verb, _ := msg.Topic.At(6).(string)
	a := CapAddr{Domain: domain, Kind: kind, Name: name}

	dev := h.dev[h.capIndex[a]]
	if dev == nil {
		h.replyErr(msg, errcode.UnknownCapability)
		return
	}

	res, err := dev.Control(a, verb, msg.Payload)
	if err != nil {
		h.replyFromError(msg, err)
		return
	}
	if res.OK {
		h.replyOK(msg)
		return
	}
	code := res.Error
	if code == "" {
		code = errcode.Busy
	}
	h.replyErr(msg, code)
}

func (h *HAL) handleEvent(ev Event) {
	// Error → retained status:degraded; no value/event published.
	if ev.Err != "" {
		h.conn.Publish(h.conn.NewMessage(
			capStatus(ev.Addr),
			types.CapabilityStatus{Link: types.LinkDegraded, TSms: ev.TSms, Error: ev.Err},
			true,
		))
		return
	}

	if ev.IsEvent {
		h.conn.Publish(h.conn.NewMessage(capEvent(ev.Addr), ev.Payload, false))
	} else {
		h.conn.Publish(h.conn.NewMessage(capValue(ev.Addr), ev.Payload, true))
	}
	h.conn.Publish(h.conn.NewMessage(
		capStatus(ev.Addr),
		types.CapabilityStatus{Link: types.LinkUp, TSms: ev.TSms},
		true,
	))
}

func (h *HAL) closeAll() {
	for i := len(h.order) - 1; i >= 0; i-- {
		if err := h.dev[h.order[i]].Close(); err != nil {
			println("[hal] close failed for:", h.order[i], "err:", err.Error())
		}
	}
}

func (h *HAL) pubHALState(level, status string) {
	h.conn.Publish(h.conn.NewMessage(
		bus.T("hal", "state"),
		types.HALState{Level: level, Status: status, TSms: timex.NowMs()},
		true,
	))
}

// All current kinds are plain outputs.
func defaultDomainFor(types.Kind) string { return "io" }

// ---- HAL as EventEmitter (enqueue to single publisher) ----

func (h *HAL) Emit(ev Event) bool {
	select {
	case h.evCh <- ev:
		return true
	default:
		return false
	}
}
