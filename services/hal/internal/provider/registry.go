// Package provider hands board resources to HAL devices: exclusive pin
// claims, interrupt edge streams and the shared clock.
package provider

import (
	"sync"
	"time"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/gpioirq"
	"bringup-go/services/hal/internal/halcore"
)

var _ core.ResourceRegistry = (*Registry)(nil)

type Registry struct {
	pins halcore.PinFactory
	clk  halcore.Clock
	irq  *gpioirq.Worker

	mu     sync.Mutex
	owners map[int]string // pin -> devID
}

// New builds a registry over a board's pin factory. irq may be nil when no
// device needs edge streams.
func New(pins halcore.PinFactory, clk halcore.Clock, irq *gpioirq.Worker) *Registry {
	if clk == nil {
		clk = halcore.MonoClock()
	}
	return &Registry{pins: pins, clk: clk, irq: irq, owners: map[int]string{}}
}

func (r *Registry) ClaimPin(devID string, n int) (halcore.IRQPin, error) {
	p, ok := r.pins.ByNumber(n)
	if !ok {
		return nil, errcode.UnknownPin
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, taken := r.owners[n]; taken && owner != devID {
		return nil, errcode.PinInUse
	}
	r.owners[n] = devID
	return p, nil
}

func (r *Registry) ReleasePin(devID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.owners[n] == devID {
		delete(r.owners, n)
	}
}

// Owner reports which device holds pin n.
func (r *Registry) Owner(n int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.owners[n]
	return id, ok
}

func (r *Registry) SubscribeGPIOEdges(devID string, n int, edge halcore.Edge, debounce time.Duration, invert bool, buf int) (core.GPIOEdgeStream, error) {
	if r.irq == nil {
		return nil, errcode.Unsupported
	}
	if owner, ok := r.Owner(n); !ok || owner != devID {
		return nil, errcode.Wrap(errcode.InvalidParams, "edges", nil)
	}
	p, ok := r.pins.ByNumber(n)
	if !ok {
		return nil, errcode.UnknownPin
	}
	s, err := r.irq.Subscribe(devID, p, edge, debounce, invert, buf)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Registry) Clock() halcore.Clock { return r.clk }
