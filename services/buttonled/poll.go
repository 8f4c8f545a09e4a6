package buttonled

import (
	"context"
	"time"
)

type PollConfig struct {
	Interval  time.Duration // default 10 ms
	ActiveLow bool
}

// Poller samples the button and toggles the LED on each press.
type Poller struct {
	btn     Button
	led     LED
	cfg     PollConfig
	last    bool
	presses uint32
}

func NewPoller(btn Button, led LED, cfg PollConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Millisecond
	}
	p := &Poller{btn: btn, led: led, cfg: cfg}
	p.last = p.pressed()
	return p
}

func (p *Poller) pressed() bool { return p.btn.Get() != p.cfg.ActiveLow }

// Sample reads the button once and reports whether it toggled the LED.
func (p *Poller) Sample() bool {
	now := p.pressed()
	edge := now && !p.last
	p.last = now
	if !edge {
		return false
	}
	p.led.Toggle()
	p.presses++
	log.Println("Led toggled", "n", p.presses)
	return true
}

func (p *Poller) Presses() uint32 { return p.presses }

// Run samples until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	t := time.NewTicker(p.cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.Sample()
		}
	}
}
