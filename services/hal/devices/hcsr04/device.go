package hcsr04

import (
	"context"
	"sync/atomic"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
	"bringup-go/types"
	"bringup-go/x/timex"
)

// Device is a trigger/echo ranger. A read runs the busy-wait cycle on its
// own goroutine so the HAL loop never blocks; one cycle at a time.
type Device struct {
	id      string
	trigger int
	echo    int
	timeout uint32

	m       Measurer
	pub     core.EventEmitter
	release func()

	dom, name string
	a         core.CapAddr

	busy   atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

func (d *Device) ID() string { return d.id }

func (d *Device) Capabilities() []core.CapabilitySpec {
	return []core.CapabilitySpec{{
		Domain: d.dom,
		Kind:   types.KindRange,
		Name:   d.name,
		Info: types.Info{
			SchemaVersion: 1,
			Driver:        "hcsr04",
			Detail:        types.RangeInfo{Trigger: d.trigger, Echo: d.echo, TimeoutUs: d.timeout},
		},
	}}
}

func (d *Device) Init(ctx context.Context) error {
	d.a = core.CapAddr{Domain: d.dom, Kind: types.KindRange, Name: d.name}
	if d.a.Domain == "" {
		d.a.Domain = "env"
	}
	if d.a.Name == "" {
		d.a.Name = d.id
	}
	d.ctx, d.cancel = context.WithCancel(ctx)
	return nil
}

func (d *Device) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	d.release()
	return nil
}

func (d *Device) Control(_ core.CapAddr, verb string, _ any) (core.EnqueueResult, error) {
	if verb != "read" {
		return core.EnqueueResult{Error: errcode.Unsupported}, nil
	}
	if !d.busy.CompareAndSwap(false, true) {
		return core.EnqueueResult{Error: errcode.Busy}, nil
	}
	go d.measure()
	return core.EnqueueResult{OK: true}, nil
}

func (d *Device) measure() {
	defer d.busy.Store(false)
	r, err := d.m.Measure(d.ctx)
	ts := timex.NowMs()
	if err != nil {
		if d.ctx.Err() != nil {
			return
		}
		_ = d.pub.Emit(core.Event{Addr: d.a, Err: errcode.Of(err), TSms: ts})
		return
	}
	_ = d.pub.Emit(core.Event{
		Addr:    d.a,
		Payload: types.RangeValue{EchoUs: r.EchoUs, DistanceMM: r.DistanceMM},
		TSms:    ts,
	})
}
