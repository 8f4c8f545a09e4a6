package core

import (
	"context"
	"time"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/gpioirq"
	"bringup-go/services/hal/internal/halcore"
	"bringup-go/types"
)

// ---- Capability & device model ----

// CapAddr is the public address of one capability:
// hal/cap/<domain>/<kind>/<name>.
type CapAddr struct {
	Domain string
	Kind   types.Kind
	Name   string
}

type CapabilitySpec struct {
	Domain string // empty => inferred from Kind
	Kind   types.Kind
	Name   string // empty => device ID
	Info   types.Info
}

// EnqueueResult is the synchronous answer to a control. OK means the work
// was accepted; results arrive later as Events.
type EnqueueResult struct {
	OK    bool
	Error errcode.Code
}

type Device interface {
	ID() string
	Capabilities() []CapabilitySpec
	Init(ctx context.Context) error
	// Control must not block the HAL loop.
	Control(addr CapAddr, verb string, payload any) (EnqueueResult, error)
	Close() error
}

// ---- Device → HAL telemetry (single shape) ----
// An Event with an empty EventTag is a value update, published retained to
// .../value. A tagged Event goes to .../event/<tag> (not retained). A
// non-empty Err publishes only .../status=degraded.

type Event struct {
	Addr     CapAddr
	Payload  any
	TSms     int64
	Err      errcode.Code
	EventTag string
}

type EventEmitter interface {
	// Emit must be non-blocking; false indicates a drop under pressure.
	Emit(ev Event) bool
}

// ---- HAL-injected resources ----

type GPIOEdge = gpioirq.Event

type GPIOEdgeStream interface {
	Events() <-chan GPIOEdge
	Close()
}

type ResourceRegistry interface {
	ClaimPin(devID string, n int) (halcore.IRQPin, error)
	ReleasePin(devID string, n int)

	// SubscribeGPIOEdges requires the pin to be claimed by devID.
	SubscribeGPIOEdges(devID string, n int, edge halcore.Edge, debounce time.Duration, invert bool, buf int) (GPIOEdgeStream, error)

	Clock() halcore.Clock
}

type Resources struct {
	Reg ResourceRegistry
	Pub EventEmitter // set by HAL
}

type BuilderInput struct {
	ID, Type string
	Params   any
	Res      Resources
}

type Builder interface {
	Build(ctx context.Context, in BuilderInput) (Device, error)
}
