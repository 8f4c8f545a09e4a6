// Package haltest has fixtures for device tests: a simulated board behind a
// real registry and an emitter that records what devices publish.
package haltest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/gpioirq"
	"bringup-go/services/hal/internal/provider"
	"bringup-go/services/hal/internal/simpin"
)

// StepClock advances by Step on every read. Safe for concurrent use.
type StepClock struct {
	Step time.Duration
	t    atomic.Int64
}

func (c *StepClock) Now() time.Duration {
	s := c.Step
	if s == 0 {
		s = time.Microsecond
	}
	return time.Duration(c.t.Add(int64(s)))
}

type Collector struct{ ch chan core.Event }

func NewCollector() *Collector { return &Collector{ch: make(chan core.Event, 64)} }

func (c *Collector) Emit(ev core.Event) bool {
	select {
	case c.ch <- ev:
		return true
	default:
		return false
	}
}

// Next returns the next event or fails the test after d.
func (c *Collector) Next(t *testing.T, d time.Duration) core.Event {
	t.Helper()
	select {
	case ev := <-c.ch:
		return ev
	case <-time.After(d):
		t.Fatal("no event")
		return core.Event{}
	}
}

// None fails if an event arrives within d.
func (c *Collector) None(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case ev := <-c.ch:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(d):
	}
}

type Board struct {
	Pins  *simpin.Factory
	Clock *StepClock
	Reg   *provider.Registry
	Out   *Collector
}

// NewBoard starts an IRQ worker bound to t's lifetime.
func NewBoard(t *testing.T) *Board {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	w := gpioirq.New(16)
	w.Start(ctx)
	pins := simpin.NewFactory(40)
	clk := &StepClock{}
	return &Board{Pins: pins, Clock: clk, Reg: provider.New(pins, clk, w), Out: NewCollector()}
}

func (b *Board) Input(id string, params any) core.BuilderInput {
	return core.BuilderInput{ID: id, Params: params, Res: core.Resources{Reg: b.Reg, Pub: b.Out}}
}
