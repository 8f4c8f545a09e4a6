//go:build rp2040 || rp2350 || stm32

package platform

import (
	"machine"

	"bringup-go/services/hal/internal/halcore"
)

// Pins maps board numbers straight to machine.Pin.
func Pins() halcore.PinFactory { return mcuPinFactory{max: selected.GPIOMax} }

type mcuPinFactory struct{ max int }

func (f mcuPinFactory) ByNumber(n int) (halcore.IRQPin, bool) {
	if n < 0 || n > f.max {
		return nil, false
	}
	return &mcuPin{p: machine.Pin(n), n: n}, true
}

type mcuPin struct {
	p machine.Pin
	n int
}

func (r *mcuPin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *mcuPin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *mcuPin) Set(level bool) { r.p.Set(level) }
func (r *mcuPin) Get() bool      { return r.p.Get() }

func (r *mcuPin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *mcuPin) Number() int { return r.n }

// SetIRQ maps to SetInterrupt (EXTI on STM32, IO_IRQ_BANK0 on RP2).
func (r *mcuPin) SetIRQ(edge halcore.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *mcuPin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}
