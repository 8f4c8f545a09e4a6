package buttonled

import (
	"context"
	"time"

	"bringup-go/services/hal"
	"bringup-go/x/critical"
)

// IRQButton is a button line with an edge interrupt.
type IRQButton interface {
	SetIRQ(edge hal.Edge, handler func()) error
	ClearIRQ() error
}

type irqCounts struct {
	interrupts uint32
	toggles    uint32
}

// Interrupt toggles the LED from the pin interrupt. The LED handle lives in
// a critical.Slot: main moves it in once, the handler borrows it per
// interrupt. The handler only counts; Run does the printing.
type Interrupt struct {
	btn    IRQButton
	edge   hal.Edge
	led    critical.Slot[LED]
	counts critical.Cell[irqCounts]
}

// NewInterrupt arms nothing yet; edge is the physical edge of a press
// (falling for an active-low button).
func NewInterrupt(btn IRQButton, edge hal.Edge) *Interrupt {
	return &Interrupt{btn: btn, edge: edge}
}

// Attach moves the LED into the shared slot and arms the interrupt.
func (b *Interrupt) Attach(led LED) error {
	b.led.Put(led)
	return b.btn.SetIRQ(b.edge, b.handle)
}

// Detach disarms the interrupt and hands the LED back.
func (b *Interrupt) Detach() (LED, bool) {
	_ = b.btn.ClearIRQ()
	return b.led.Take()
}

// handle runs in interrupt context: one section, no closures.
func (b *Interrupt) handle() {
	g := critical.Lock()
	c := b.counts.Ref()
	c.interrupts++
	if l, ok := b.led.Borrow(); ok {
		(*l).Toggle()
		c.toggles++
	}
	g.Unlock()
}

// Counts returns interrupts seen and LED toggles made.
func (b *Interrupt) Counts() (interrupts, toggles uint32) {
	c := b.counts.Load()
	return c.interrupts, c.toggles
}

// Run reports new interrupts every period until ctx is cancelled.
func (b *Interrupt) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	t := time.NewTicker(period)
	defer t.Stop()
	var seen irqCounts
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			seen = b.report(seen)
		}
	}
}

func (b *Interrupt) report(seen irqCounts) irqCounts {
	c := b.counts.Load()
	if c.interrupts != seen.interrupts {
		log.Println("Interrupt", "n", c.interrupts)
	}
	if c.toggles != seen.toggles {
		log.Println("Led toggled", "n", c.toggles)
	}
	return c
}
