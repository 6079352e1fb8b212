// Package heartbeat keeps a status LED playing a heartbeat pattern and
// prints a periodic liveness line.
package heartbeat

import (
	"context"
	"time"

	"blinkcode-go/bus"
	"blinkcode-go/services/hal"
	"blinkcode-go/types"
	"blinkcode-go/x/mathx"
)

const (
	DefaultPeriodMs = 1000

	// DefaultRetry is how long to wait before re-sending a failed blink
	// request.
	DefaultRetry = time.Second

	pulseMs = 60
	gapMs   = 120

	requestTimeout = 500 * time.Millisecond
)

var topicConfigHeartbeat = bus.T("config", "heartbeat")

// Pattern returns the double-pulse heartbeat for periodMs as durations for
// types.LEDBlink: rest, pulse, gap, pulse.
func Pattern(periodMs uint32) []uint32 {
	if periodMs == 0 {
		periodMs = DefaultPeriodMs
	}
	rest := mathx.SubSat(periodMs, 2*pulseMs+gapMs)
	return []uint32{rest, pulseMs, gapMs, pulseMs}
}

type Service struct {
	// Retry overrides DefaultRetry when non-zero.
	Retry time.Duration

	start time.Time
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	stSub := conn.Subscribe(hal.State())
	defer conn.Unsubscribe(stSub)

	tick := time.NewTicker(time.Hour)
	tick.Stop()
	defer tick.Stop()

	retryEvery := s.Retry
	if retryEvery <= 0 {
		retryEvery = DefaultRetry
	}
	retry := time.NewTimer(retryEvery)
	stopTimer(retry)
	defer retry.Stop()

	var (
		cfg     types.HeartbeatConfig
		haveCfg bool
		ready   bool
		applied bool
	)
	apply := func() {
		stopTimer(retry)
		if !haveCfg || !ready || applied || cfg.LED == "" {
			return
		}
		applied = s.startPattern(ctx, conn, cfg)
		if !applied && ctx.Err() == nil {
			retry.Reset(retryEvery)
		}
	}

	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			println("[heartbeat] alive, uptime", int(time.Since(s.start).Seconds()), "s")
		case <-retry.C:
			apply()
		case msg := <-stSub.Channel():
			st, ok := msg.Payload.(types.HALState)
			if !ok {
				continue
			}
			ready = st.Level == "ready"
			if !ready {
				applied = false
			}
			apply()
		case msg := <-cfgSub.Channel():
			c, ok := msg.Payload.(types.HeartbeatConfig)
			if !ok {
				println("[heartbeat] ignoring config of unexpected type")
				continue
			}
			if haveCfg && cfg.LED != "" && cfg.LED != c.LED && ready {
				stopPattern(conn, cfg.LED)
			}
			cfg, haveCfg, applied = c, true, false
			if c.IntervalS > 0 {
				tick.Reset(time.Duration(c.IntervalS) * time.Second)
			} else {
				tick.Stop()
			}
			apply()
		}
	}
}

// stopTimer stops t and drains a pending expiry.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// stopPattern releases an LED the heartbeat no longer drives. No reply is
// awaited.
func stopPattern(conn *bus.Connection, led string) {
	conn.Publish(conn.NewMessage(hal.Control(led, "stop"), nil, false))
	println("[heartbeat] stopped pattern on", led)
}

// startPattern asks the HAL to play the heartbeat and reports success.
func (s *Service) startPattern(ctx context.Context, conn *bus.Connection, cfg types.HeartbeatConfig) bool {
	rctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := conn.NewMessage(hal.Control(cfg.LED, "blink"), types.LEDBlink{
		Encoding:  types.EncodingSteps,
		Durations: Pattern(cfg.PeriodMs),
	}, false)
	reply, err := conn.RequestWait(rctx, req)
	if err != nil {
		println("[heartbeat] blink request on", cfg.LED, "failed:", err.Error())
		return false
	}
	if r, ok := reply.Payload.(types.ErrorReply); ok {
		println("[heartbeat] blink on", cfg.LED, "rejected:", r.Error)
		return false
	}
	println("[heartbeat] pattern running on", cfg.LED)
	return true
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	s.start = time.Now()
	go s.serviceLoop(ctx, conn)
	return nil
}
