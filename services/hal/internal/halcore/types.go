// services/hal/internal/halcore/types.go
package halcore

import "time"

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// ParsePull maps config strings ("up", "down", anything else) to a Pull.
func ParsePull(s string) Pull {
	switch s {
	case "up":
		return PullUp
	case "down":
		return PullDown
	default:
		return PullNone
	}
}

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// ParseEdge is the inverse of Edge.String; unknown strings give EdgeNone.
func ParseEdge(s string) Edge {
	switch s {
	case "rising":
		return EdgeRising
	case "falling":
		return EdgeFalling
	case "both":
		return EdgeBoth
	default:
		return EdgeNone
	}
}

// IRQPin extends GPIOPin with interrupts. The handler runs in interrupt
// context: it must not block or allocate.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by the board's number scheme.
type PinFactory interface {
	ByNumber(n int) (IRQPin, bool)
}

// ---- Time ----

// Clock is a free-running monotonic counter. Resolution must be at least
// one microsecond for echo timing.
type Clock interface {
	Now() time.Duration
}

type monoClock struct{ epoch time.Time }

// MonoClock counts from its creation using the runtime monotonic clock
// (the hardware timer on TinyGo targets).
func MonoClock() Clock { return monoClock{epoch: time.Now()} }

func (c monoClock) Now() time.Duration { return time.Since(c.epoch) }

// BusyWait spins until d has elapsed on clk. Used for pulses too short for
// the scheduler.
func BusyWait(clk Clock, d time.Duration) {
	start := clk.Now()
	for clk.Now()-start < d {
	}
}
