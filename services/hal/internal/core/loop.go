package core

import (
	"context"
	"time"

	"bringup-go/bus"
	"bringup-go/errcode"
	"bringup-go/services/hal/internal/util"
	"bringup-go/types"
	"bringup-go/x/logx"
	"bringup-go/x/timex"
)

const (
	eventQueueLen = 16
	pollQueueLen  = 4
)

var log = logx.New("hal")

// HAL owns the devices and is the only publisher of hal/... topics. Device
// goroutines hand results over through Emit.
type HAL struct {
	conn *bus.Connection
	res  Resources

	dev      map[string]Device  // devID -> device
	capIndex map[CapAddr]string // capability -> devID

	poller *Poller
	pollCh chan PollReq
	evCh   chan Event

	ready bool
}

func NewHAL(conn *bus.Connection, res Resources) *HAL {
	h := &HAL{
		conn:     conn,
		res:      res,
		dev:      map[string]Device{},
		capIndex: map[CapAddr]string{},
		pollCh:   make(chan PollReq, pollQueueLen),
		evCh:     make(chan Event, eventQueueLen),
	}
	h.poller = NewPoller(h.pollCh)
	h.res.Pub = h
	return h
}

func (h *HAL) Run(ctx context.Context) {
	cfgSub := h.conn.Subscribe(topicConfigHAL())
	ctrlSub := h.conn.Subscribe(ctrlWildcard())
	defer h.conn.Unsubscribe(cfgSub)
	defer h.conn.Unsubscribe(ctrlSub)

	go h.poller.Run(ctx)
	h.pubHALState("idle", "awaiting_config")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.pubHALState("stopped", "context_cancelled")
			return
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				return
			}
			var cfg types.HALConfig
			if err := decodeConfig(msg.Payload, &cfg); err != nil {
				log.Error("bad config", err)
				continue
			}
			h.applyConfig(ctx, cfg)
			if !h.ready {
				h.ready = true
				h.pubHALState("ready", "")
			}
		case m, ok := <-ctrlSub.Channel():
			if !ok {
				return
			}
			if !h.ready {
				h.replyErr(m, errcode.HALNotReady)
				continue
			}
			h.handleControl(m)
		case req := <-h.pollCh:
			h.handlePoll(req)
		case ev := <-h.evCh:
			h.handleEvent(ev)
		}
	}
}

func decodeConfig(v any, dst *types.HALConfig) error {
	if c, ok := v.(types.HALConfig); ok {
		*dst = c
		return nil
	}
	if err := util.DecodeJSON(v, dst); err != nil {
		return errcode.Wrap(errcode.InvalidPayload, "config", err)
	}
	return nil
}

// applyConfig is additive: devices that already exist are left alone.
func (h *HAL) applyConfig(ctx context.Context, cfg types.HALConfig) {
	for _, dc := range cfg.Devices {
		if _, exists := h.dev[dc.ID]; exists {
			continue
		}
		b, ok := lookupBuilder(dc.Type)
		if !ok {
			log.Println("no builder", "type", dc.Type, "id", dc.ID)
			continue
		}
		dev, err := b.Build(ctx, BuilderInput{ID: dc.ID, Type: dc.Type, Params: dc.Params, Res: h.res})
		if err != nil {
			log.Error("build failed", err, "id", dc.ID)
			continue
		}
		h.dev[dev.ID()] = dev

		// Index and announce before Init so initial values find their address.
		for _, cs := range dev.Capabilities() {
			a := h.addrOf(dev, cs)
			h.capIndex[a] = dev.ID()
			h.conn.Publish(h.conn.NewMessage(capInfo(a), cs.Info, true))
			h.conn.Publish(h.conn.NewMessage(
				capStatus(a),
				types.CapabilityStatus{Link: types.LinkDown, TSms: timex.NowMs()},
				true,
			))
		}
		if err := dev.Init(ctx); err != nil {
			log.Error("init failed", err, "id", dc.ID)
			h.removeDevice(dev)
			continue
		}
		log.Println("device up", "id", dc.ID, "type", dc.Type)
	}

	for _, ps := range cfg.Pollers {
		a := CapAddr{Domain: ps.Domain, Kind: ps.Kind, Name: ps.Name}
		if _, ok := h.capIndex[a]; !ok {
			log.Println("poller for unknown capability", "name", ps.Name)
			continue
		}
		h.poller.Upsert(a, pollVerb(ps.Verb), time.Duration(ps.IntervalMs)*time.Millisecond, time.Duration(ps.JitterMs)*time.Millisecond)
	}
}

func (h *HAL) addrOf(dev Device, cs CapabilitySpec) CapAddr {
	a := CapAddr{Domain: cs.Domain, Kind: cs.Kind, Name: cs.Name}
	if a.Domain == "" {
		a.Domain = defaultDomainFor(a.Kind)
	}
	if a.Name == "" {
		a.Name = dev.ID()
	}
	return a
}

func (h *HAL) removeDevice(dev Device) {
	for a, id := range h.capIndex {
		if id == dev.ID() {
			h.poller.StopAll(a)
			delete(h.capIndex, a)
			h.conn.Publish(h.conn.NewMessage(capInfo(a), nil, true))
			h.conn.Publish(h.conn.NewMessage(
				capStatus(a),
				types.CapabilityStatus{Link: types.LinkDown, TSms: timex.NowMs(), Error: string(errcode.Error)},
				true,
			))
		}
	}
	_ = dev.Close()
	delete(h.dev, dev.ID())
}

func (h *HAL) closeAll() {
	for _, d := range h.dev {
		_ = d.Close()
	}
}

func (h *HAL) handleControl(msg *bus.Message) {
	// hal/cap/<domain>/<kind>/<name>/control/<verb>
	if msg.Topic.Len() != 7 {
		h.replyErr(msg, errcode.InvalidTopic)
		return
	}
	domain, ok1 := msg.Topic.At(2).(string)
	kind, ok2 := msg.Topic.At(3).(string)
	name, ok3 := msg.Topic.At(4).(string)
	verb, ok4 := msg.Topic.At(6).(string)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		h.replyErr(msg, errcode.InvalidTopic)
		return
	}
	a := CapAddr{Domain: domain, Kind: types.Kind(kind), Name: name}

	ownerID, ok := h.capIndex[a]
	if !ok {
		h.replyErr(msg, errcode.UnknownCapability)
		return
	}

	switch verb {
	case "poll_start":
		h.pollStart(msg, a)
		return
	case "poll_stop":
		h.pollStop(msg, a)
		return
	}

	res, err := h.dev[ownerID].Control(a, verb, msg.Payload)
	if err != nil {
		h.replyFromError(msg, err)
		return
	}
	if res.OK {
		h.replyOK(msg)
		return
	}
	code := res.Error
	if code == "" {
		code = errcode.Busy
	}
	h.replyErr(msg, code)
}

func (h *HAL) pollStart(msg *bus.Message, a CapAddr) {
	var ps types.PollStart
	if err := decodePayload(msg.Payload, &ps); err != nil || ps.IntervalMs == 0 {
		h.replyErr(msg, errcode.InvalidPayload)
		return
	}
	h.poller.Upsert(a, pollVerb(ps.Verb), time.Duration(ps.IntervalMs)*time.Millisecond, time.Duration(ps.JitterMs)*time.Millisecond)
	h.replyOK(msg)
}

func (h *HAL) pollStop(msg *bus.Message, a CapAddr) {
	var ps types.PollStop
	if err := decodePayload(msg.Payload, &ps); err != nil {
		h.replyErr(msg, errcode.InvalidPayload)
		return
	}
	h.poller.Stop(a, pollVerb(ps.Verb))
	h.replyOK(msg)
}

func decodePayload[T any](v any, dst *T) error {
	if v == nil {
		return nil
	}
	if t, ok := v.(T); ok {
		*dst = t
		return nil
	}
	return util.DecodeJSON(v, dst)
}

func pollVerb(v string) string {
	if v == "" {
		return "read"
	}
	return v
}

func (h *HAL) handlePoll(req PollReq) {
	id, ok := h.capIndex[req.Addr]
	if !ok {
		h.poller.StopAll(req.Addr)
		return
	}
	// Busy means the previous cycle is still running; skip this tick.
	if _, err := h.dev[id].Control(req.Addr, req.Verb, nil); err != nil {
		log.Error("poll failed", err, "name", req.Addr.Name)
	}
}

func (h *HAL) handleEvent(ev Event) {
	a := ev.Addr
	if ev.TSms == 0 {
		ev.TSms = timex.NowMs()
	}

	if ev.Err != "" {
		h.conn.Publish(h.conn.NewMessage(
			capStatus(a),
			types.CapabilityStatus{Link: types.LinkDegraded, TSms: ev.TSms, Error: string(ev.Err)},
			true,
		))
		return
	}

	if ev.EventTag != "" {
		h.conn.Publish(h.conn.NewMessage(capEvent(a, ev.EventTag), ev.Payload, false))
	} else {
		h.conn.Publish(h.conn.NewMessage(capValue(a), ev.Payload, true))
	}
	h.conn.Publish(h.conn.NewMessage(
		capStatus(a),
		types.CapabilityStatus{Link: types.LinkUp, TSms: ev.TSms},
		true,
	))
}

func (h *HAL) pubHALState(level, status string) {
	h.conn.Publish(h.conn.NewMessage(
		topicHALState(),
		types.HALState{Level: level, Status: status, TSms: timex.NowMs()},
		true,
	))
}

func defaultDomainFor(k types.Kind) string {
	switch k {
	case types.KindRange:
		return "env"
	default:
		return "io"
	}
}

// Emit enqueues a device result for publication from the HAL goroutine.
func (h *HAL) Emit(ev Event) bool {
	select {
	case h.evCh <- ev:
		return true
	default:
		return false
	}
}
