package gpio_button

import (
	"context"
	"time"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/halcore"
	"bringup-go/types"
)

type Device struct {
	id     string
	pinN   int
	gpio   halcore.GPIOPin
	invert bool
	edge   halcore.Edge

	pub core.EventEmitter
	reg core.ResourceRegistry

	dom  string
	name string
	a    core.CapAddr

	debounce time.Duration
	es       core.GPIOEdgeStream
}

func (d *Device) ID() string { return d.id }

func (d *Device) Capabilities() []core.CapabilitySpec {
	return []core.CapabilitySpec{{
		Domain: d.dom,
		Kind:   types.KindButton,
		Name:   d.name,
		Info: types.Info{
			SchemaVersion: 1,
			Driver:        "gpio_button",
			Detail:        types.ButtonInfo{Pin: d.pinN, Edge: d.edge.String()},
		},
	}}
}

func (d *Device) Init(ctx context.Context) error {
	d.a = core.CapAddr{Domain: d.dom, Kind: types.KindButton, Name: d.name}
	if d.a.Domain == "" {
		d.a.Domain = "io"
	}
	if d.a.Name == "" {
		d.a.Name = d.id
	}

	d.pub.Emit(core.Event{Addr: d.a, Payload: types.ButtonValue{Pressed: d.pressed()}})

	es, err := d.reg.SubscribeGPIOEdges(d.id, d.pinN, d.edge, d.debounce, d.invert, 8)
	if err != nil {
		// Still readable by polling.
		d.pub.Emit(core.Event{Addr: d.a, Err: errcode.Of(err)})
		return nil
	}
	d.es = es
	go d.edgeLoop()
	return nil
}

func (d *Device) Close() error {
	if d.es != nil {
		d.es.Close()
	}
	d.reg.ReleasePin(d.id, d.pinN)
	return nil
}

func (d *Device) Control(_ core.CapAddr, verb string, _ any) (core.EnqueueResult, error) {
	switch verb {
	case "read":
		_ = d.pub.Emit(core.Event{Addr: d.a, Payload: types.ButtonValue{Pressed: d.pressed()}})
		return core.EnqueueResult{OK: true}, nil
	default:
		return core.EnqueueResult{OK: false, Error: errcode.Unsupported}, nil
	}
}

// edgeLoop ends when Close closes the stream.
func (d *Device) edgeLoop() {
	for ev := range d.es.Events() {
		// Inversion is already applied by the IRQ worker.
		v := types.ButtonValue{Pressed: ev.Level}
		tag := "released"
		if ev.Level {
			tag = "pressed"
		}
		ts := ev.TS.UnixMilli()
		_ = d.pub.Emit(core.Event{Addr: d.a, EventTag: tag, Payload: v, TSms: ts})
		_ = d.pub.Emit(core.Event{Addr: d.a, Payload: v, TSms: ts})
	}
}

func (d *Device) pressed() bool { return d.gpio.Get() != d.invert }
