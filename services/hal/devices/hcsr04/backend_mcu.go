//go:build rp2040 || rp2350 || stm32

package hcsr04

import (
	"context"
	"machine"
	"time"

	"bringup-go/drivers/ultrasonic"
	"bringup-go/errcode"

	"tinygo.org/x/drivers/hcsr04"
)

// The "tinygo" backend times the echo with the upstream driver instead of
// the busy-wait one. It cannot tell a missing echo from a stuck one; both
// read as a zero pulse.
func init() { backends["tinygo"] = newTinygoBackend }

type tinygoBackend struct{ dev hcsr04.Device }

func newTinygoBackend(trigger, echo int, _ Params) (Measurer, error) {
	d := hcsr04.New(machine.Pin(trigger), machine.Pin(echo))
	d.Configure()
	return &tinygoBackend{dev: d}, nil
}

func (b *tinygoBackend) Measure(ctx context.Context) (ultrasonic.Reading, error) {
	if err := ctx.Err(); err != nil {
		return ultrasonic.Reading{}, err
	}
	us := b.dev.ReadPulse()
	if us <= 0 {
		return ultrasonic.Reading{}, errcode.Timeout
	}
	return ultrasonic.Reading{
		Echo:       time.Duration(us) * time.Microsecond,
		EchoUs:     uint32(us),
		DistanceMM: ultrasonic.DistanceMM(uint32(us)),
	}, nil
}
