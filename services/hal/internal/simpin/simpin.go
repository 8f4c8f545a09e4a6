// Package simpin provides simulated GPIO for host builds and tests.
package simpin

import (
	"sync"
	"time"

	"bringup-go/services/hal/internal/halcore"
)

// Pin is a simulated pin. Outside stimulus goes through Drive; firmware
// writes go through Set. Both fire the interrupt handler on a level change.
type Pin struct {
	mu      sync.Mutex
	n       int
	level   bool
	output  bool
	edge    halcore.Edge
	handler func()
	onSet   func(level bool)
	source  func() bool
}

func New(n int) *Pin { return &Pin{n: n} }

func (p *Pin) Number() int { return p.n }

func (p *Pin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.output = false
	switch pull {
	case halcore.PullUp:
		p.level = true
	case halcore.PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *Pin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.output = true
	p.mu.Unlock()
	p.Set(initial)
	return nil
}

func (p *Pin) Set(level bool) {
	p.mu.Lock()
	hook := p.onSet
	p.mu.Unlock()
	p.change(level)
	if hook != nil {
		hook(level)
	}
}

func (p *Pin) Get() bool {
	p.mu.Lock()
	src := p.source
	l := p.level
	p.mu.Unlock()
	if src != nil {
		return src()
	}
	return l
}

func (p *Pin) Toggle() { p.Set(!p.Get()) }

// Drive applies an external level, as a button or sensor would.
func (p *Pin) Drive(level bool) { p.change(level) }

func (p *Pin) change(level bool) {
	p.mu.Lock()
	prev := p.level
	p.level = level
	h, e := p.handler, p.edge
	p.mu.Unlock()

	if h == nil || prev == level {
		return
	}
	if e == halcore.EdgeBoth || (e == halcore.EdgeRising && level) || (e == halcore.EdgeFalling && !level) {
		h()
	}
}

func (p *Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	p.edge, p.handler = edge, handler
	p.mu.Unlock()
	return nil
}

func (p *Pin) ClearIRQ() error { return p.SetIRQ(halcore.EdgeNone, nil) }

// Armed reports whether an interrupt handler is installed.
func (p *Pin) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handler != nil
}

// OnSet registers a hook called after every firmware write.
func (p *Pin) OnSet(fn func(level bool)) {
	p.mu.Lock()
	p.onSet = fn
	p.mu.Unlock()
}

// SetSource makes Get compute the level instead of reading the stored one.
func (p *Pin) SetSource(fn func() bool) {
	p.mu.Lock()
	p.source = fn
	p.mu.Unlock()
}

// ---- Factory ----

// Factory hands out pins 0..Max, creating them on first use.
type Factory struct {
	mu   sync.Mutex
	max  int
	pins map[int]*Pin
}

func NewFactory(max int) *Factory { return &Factory{max: max, pins: map[int]*Pin{}} }

func (f *Factory) ByNumber(n int) (halcore.IRQPin, bool) {
	p := f.Pin(n)
	if p == nil {
		return nil, false
	}
	return p, true
}

// Pin returns the concrete simulated pin, or nil when out of range.
func (f *Factory) Pin(n int) *Pin {
	if n < 0 || n > f.max {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.pins[n]
	if p == nil {
		p = New(n)
		f.pins[n] = p
	}
	return p
}

// ---- Ultrasonic echo ----

// Echo simulates a trigger/echo ranging sensor: a falling trigger edge
// starts a cycle, the echo line rises after lead and stays high for width.
type Echo struct {
	mu     sync.Mutex
	clk    halcore.Clock
	lead   time.Duration
	width  time.Duration
	fellAt time.Duration
	armed  bool
}

// AttachEcho wires trigger writes to the computed echo level. A zero width
// simulates a missing target: the echo never rises.
func AttachEcho(trigger, echo *Pin, clk halcore.Clock, lead, width time.Duration) *Echo {
	e := &Echo{clk: clk, lead: lead, width: width}
	trigger.OnSet(func(level bool) {
		if level {
			return
		}
		e.mu.Lock()
		e.fellAt = clk.Now()
		e.armed = true
		e.mu.Unlock()
	})
	echo.SetSource(e.level)
	return e
}

// SetWidth changes the echo width for following cycles; width maps to
// distance as width_us * 0.17 mm.
func (e *Echo) SetWidth(d time.Duration) {
	e.mu.Lock()
	e.width = d
	e.mu.Unlock()
}

func (e *Echo) level() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.armed || e.width <= 0 {
		return false
	}
	dt := e.clk.Now() - e.fellAt
	return dt >= e.lead && dt < e.lead+e.width
}
