// Package blink toggles an LED capability on a timer. A press of the
// button capability steps the period through a configured ring.
package blink

import (
	"context"
	"sync/atomic"
	"time"

	"bringup-go/bus"
	"bringup-go/errcode"
	"bringup-go/services/config"
	"bringup-go/x/logx"
	"bringup-go/x/mathx"
	"bringup-go/x/timex"
)

const (
	defaultPeriod = 500 * time.Millisecond
	minPeriodMs   = 10
	maxPeriodMs   = 60_000
)

var (
	log               = logx.New("blink")
	topicConfigBlink  = bus.T("config", "blink")
	defaultPeriodRing = []uint32{2000, 1500, 1000, 500}
)

type Config struct {
	PeriodMs  uint32   `json:"period_ms"`
	PeriodsMs []uint32 `json:"periods_ms,omitempty"`
}

type Service struct {
	LED    string // hal/cap/io/led/<LED>
	Button string // hal/cap/io/button/<Button>; empty disables cycling

	periodMs atomic.Uint32
	toggles  atomic.Uint32
}

func New(led, button string) *Service { return &Service{LED: led, Button: button} }

// Period is the current toggle interval.
func (s *Service) Period() time.Duration { return timex.Ms(s.periodMs.Load(), defaultPeriod) }

// Toggles counts toggle requests sent.
func (s *Service) Toggles() uint32 { return s.toggles.Load() }

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigBlink)
	defer conn.Unsubscribe(cfgSub)

	var btnCh <-chan *bus.Message
	if s.Button != "" {
		btnSub := conn.Subscribe(bus.T("hal", "cap", "io", "button", s.Button, "event", "pressed"))
		defer conn.Unsubscribe(btnSub)
		btnCh = btnSub.Channel()
	}
	toggle := bus.T("hal", "cap", "io", "led", s.LED, "control", "toggle")
	ring := defaultPeriodRing

	tick := time.NewTicker(s.Period())
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("stopping")
			return
		case <-tick.C:
			n := s.toggles.Add(1)
			conn.Publish(conn.NewMessage(toggle, nil, false))
			log.Println("toggle", "n", n)
		case msg := <-cfgSub.Channel():
			var c Config
			if err := config.Decode(msg.Payload, &c); err != nil {
				log.Error("bad config", err)
				continue
			}
			if len(c.PeriodsMs) > 0 {
				ring = c.PeriodsMs
			}
			if c.PeriodMs != 0 {
				s.setPeriod(tick, c.PeriodMs)
			}
		case <-btnCh:
			s.setPeriod(tick, mathx.NextIn(ring, s.periodMs.Load()))
		}
	}
}

func (s *Service) setPeriod(tick *time.Ticker, ms uint32) {
	ms = mathx.Clamp(ms, minPeriodMs, maxPeriodMs)
	s.periodMs.Store(ms)
	tick.Reset(s.Period())
	log.Println("period", "ms", ms)
}

// Start the blink service. The button is optional; the LED is not.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.LED == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "blink", Msg: "no led capability"}
	}
	go s.serviceLoop(ctx, conn)
	return nil
}
