package gpio_led

import (
	"context"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/halcore"
	"bringup-go/types"
)

// Device is one LED on a GPIO output. Controls run inline: a pin write is
// cheap enough for the HAL loop.
type Device struct {
	id      string
	pin     halcore.GPIOPin
	reg     core.ResourceRegistry
	pub     core.EventEmitter
	initial bool
	low     bool

	dom, name string
	a         core.CapAddr
}

func (d *Device) ID() string { return d.id }

func (d *Device) Capabilities() []core.CapabilitySpec {
	return []core.CapabilitySpec{{
		Domain: d.dom,
		Kind:   types.KindLED,
		Name:   d.name,
		Info: types.Info{
			SchemaVersion: 1,
			Driver:        "gpio_led",
			Detail:        types.LEDInfo{Pin: d.pin.Number(), ActiveLow: d.low},
		},
	}}
}

func (d *Device) Init(ctx context.Context) error {
	d.a = core.CapAddr{Domain: d.dom, Kind: types.KindLED, Name: d.name}
	if d.a.Domain == "" {
		d.a.Domain = "io"
	}
	if d.a.Name == "" {
		d.a.Name = d.id
	}
	if err := d.pin.ConfigureOutput(d.level(d.initial)); err != nil {
		return err
	}
	d.emit()
	return nil
}

func (d *Device) Close() error {
	d.reg.ReleasePin(d.id, d.pin.Number())
	return nil
}

func (d *Device) Control(_ core.CapAddr, verb string, payload any) (core.EnqueueResult, error) {
	switch verb {
	case "set":
		if payload == nil {
			return core.EnqueueResult{Error: errcode.InvalidPayload}, nil
		}
		v, err := core.DecodeParams[types.LEDSet](payload)
		if err != nil {
			return core.EnqueueResult{Error: errcode.InvalidPayload}, nil
		}
		d.pin.Set(d.level(v.On))
	case "toggle":
		d.pin.Toggle()
	case "read":
	default:
		return core.EnqueueResult{Error: errcode.Unsupported}, nil
	}
	d.emit()
	return core.EnqueueResult{OK: true}, nil
}

// On reports the logical state.
func (d *Device) On() bool { return d.pin.Get() != d.low }

func (d *Device) level(on bool) bool { return on != d.low }

func (d *Device) emit() {
	_ = d.pub.Emit(core.Event{Addr: d.a, Payload: types.LEDValue{On: d.On()}})
}
