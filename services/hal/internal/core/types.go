package core

import (
	"context"

	"blinkcode-go/errcode"
	"blinkcode-go/types"
)

// ---- Capability & device model ----

// CapAddr is the public address of a capability: hal/cap/<domain>/<kind>/<name>.
type CapAddr struct {
	Domain string
	Kind   string
	Name   string
}

type CapabilitySpec struct {
	Domain string // "" => inferred from Kind
	Kind   types.Kind
	Name   string // "" => device ID
	Info   types.Info
}

// EnqueueResult is a device's answer to a control verb. OK=false carries a
// short error code for the reply.
type EnqueueResult struct {
	OK    bool
	Error errcode.Code
}

type Device interface {
	ID() string
	Capabilities() []CapabilitySpec
	Init(ctx context.Context) error
	Control(addr CapAddr, method string, payload any) (EnqueueResult, error)
	Close() error // release claimed resources
}

// Poller is implemented by devices that need cooperative time slices. Poll
// is called from the HAL loop at the configured interval and must not block.
type Poller interface {
	Poll()
}

// ---- Device → HAL telemetry ----
// An Event is a retained value update for a capability unless IsEvent is
// set. Err, when non-empty, publishes only status=degraded.

type Event struct {
	Addr    CapAddr
	Payload any
	TSms    int64
	Err     string
	IsEvent bool
}

type EventEmitter interface {
	// Emit enqueues an Event for publication without blocking; false means
	// it was dropped.
	Emit(ev Event) bool
}

// ---- Builder input ----

type BuilderInput struct {
	ID, Type string
	Params   any
	Res      Resources
}

type Builder interface {
	Build(ctx context.Context, in BuilderInput) (Device, error)
}
