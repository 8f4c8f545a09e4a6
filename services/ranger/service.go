// Package ranger drives the ultrasonic capability: it asks the HAL to poll
// it and logs each echo with its distance.
package ranger

import (
	"context"
	"sync"

	"bringup-go/bus"
	"bringup-go/errcode"
	"bringup-go/services/config"
	"bringup-go/types"
	"bringup-go/x/logx"
)

var (
	log               = logx.New("ranger")
	topicConfigRanger = bus.T("config", "ranger")
	topicHALState     = bus.T("hal", "state")
)

type Config struct {
	IntervalMs uint32  `json:"interval_ms"`
	Alpha      float32 `json:"alpha"`
	MaxJumpMM  float32 `json:"max_jump_mm"`
}

func (c *Config) ensureDefaults() {
	if c.IntervalMs == 0 {
		c.IntervalMs = 100
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		c.Alpha = 0.3
	}
}

// Stats is a snapshot for callers and tests.
type Stats struct {
	Readings uint32
	Failures uint32
	Last     types.RangeValue
	Smoothed float32
}

type Service struct {
	Name string // hal/cap/env/range/<Name>

	cfg Config
	sm  Smoother

	mu    sync.Mutex
	stats Stats
}

func New(name string) *Service {
	s := &Service{Name: name}
	s.cfg.ensureDefaults()
	s.sm = Smoother{Alpha: s.cfg.Alpha}
	return s
}

// Stats returns the latest snapshot published by the service loop.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Service) cap(suffix ...bus.Token) bus.Topic {
	return bus.T("hal", "cap", "env", string(types.KindRange), s.Name).Append(suffix...)
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigRanger)
	stateSub := conn.Subscribe(topicHALState)
	valSub := conn.Subscribe(s.cap("value"))
	stSub := conn.Subscribe(s.cap("status"))
	defer conn.Unsubscribe(cfgSub)
	defer conn.Unsubscribe(stateSub)
	defer conn.Unsubscribe(valSub)
	defer conn.Unsubscribe(stSub)

	var (
		st      Stats
		halUp   bool
		polling bool
		lastTS  int64
	)
	startPoll := func() {
		conn.Publish(conn.NewMessage(s.cap("control", "poll_start"),
			types.PollStart{Verb: "read", IntervalMs: s.cfg.IntervalMs}, false))
		polling = true
		log.Println("polling", "interval_ms", s.cfg.IntervalMs)
	}

	for {
		select {
		case <-ctx.Done():
			if polling {
				conn.Publish(conn.NewMessage(s.cap("control", "poll_stop"), types.PollStop{Verb: "read"}, false))
			}
			return

		case m := <-cfgSub.Channel():
			var c Config
			if err := config.Decode(m.Payload, &c); err != nil {
				log.Error("bad config", err)
				continue
			}
			c.ensureDefaults()
			s.cfg = c
			s.sm = Smoother{Alpha: c.Alpha, MaxJump: c.MaxJumpMM}
			if halUp {
				startPoll()
			}

		case m := <-stateSub.Channel():
			hs, ok := m.Payload.(types.HALState)
			if !ok {
				continue
			}
			if hs.Level == "ready" && !halUp {
				halUp = true
				startPoll()
			} else if hs.Level != "ready" {
				halUp, polling = false, false
			}

		case m := <-valSub.Channel():
			v, ok := m.Payload.(types.RangeValue)
			if !ok {
				continue
			}
			st.Readings++
			st.Last = v
			s.sm.Add(v.DistanceMM)
			st.Smoothed, _ = s.sm.Value()
			log.Println("measured", "echo_us", v.EchoUs, "distance_mm", v.DistanceMM, "smoothed_mm", st.Smoothed)
			s.publishStats(st)

		case m := <-stSub.Channel():
			cs, ok := m.Payload.(types.CapabilityStatus)
			if !ok || cs.Link != types.LinkDegraded || cs.TSms == lastTS {
				continue
			}
			lastTS = cs.TSms
			st.Failures++
			log.Println("no distance measured", "err", cs.Error)
			s.publishStats(st)
		}
	}
}

func (s *Service) publishStats(st Stats) {
	s.mu.Lock()
	s.stats = st
	s.mu.Unlock()
}

// Start the ranger service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	if s.Name == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "ranger", Msg: "no range capability"}
	}
	go s.serviceLoop(ctx, conn)
	return nil
}
