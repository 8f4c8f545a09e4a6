// Package hal is the hardware service. It turns a retained config/hal
// message into devices and exposes them as bus capabilities under
// hal/cap/<domain>/<kind>/<name>/...
package hal

import (
	"context"
	"io"

	"bringup-go/bus"
	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/gpioirq"
	"bringup-go/services/hal/internal/halcore"
	"bringup-go/services/hal/internal/platform"
	"bringup-go/services/hal/internal/provider"

	_ "bringup-go/services/hal/devices/gpio_button"
	_ "bringup-go/services/hal/devices/gpio_led"
	_ "bringup-go/services/hal/devices/hcsr04"
)

// Board is the compiled-in pinout.
type Board = platform.Board

// Pin is a raw GPIO for programs that drive hardware without the bus.
type Pin = halcore.IRQPin

type Pull = halcore.Pull

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown
)

// ParsePull maps "up"/"down" to a Pull; anything else is PullNone.
func ParsePull(s string) Pull { return halcore.ParsePull(s) }

type Edge = halcore.Edge

const (
	EdgeRising  = halcore.EdgeRising
	EdgeFalling = halcore.EdgeFalling
	EdgeBoth    = halcore.EdgeBoth
)

const isrQueueLen = 32

func SelectedBoard() Board { return platform.Selected() }

// PinByNumber returns a board pin. It bypasses the HAL's claims, so do not
// mix it with HAL devices on the same pin.
func PinByNumber(n int) (Pin, bool) { return platform.Pins().ByNumber(n) }

// Console is the debug output stream.
func Console() io.Writer { return platform.ConsoleOut() }

// Run blocks until ctx is cancelled.
func Run(ctx context.Context, conn *bus.Connection) {
	irq := gpioirq.New(isrQueueLen)
	irq.Start(ctx)
	reg := provider.New(platform.Pins(), halcore.MonoClock(), irq)
	core.NewHAL(conn, core.Resources{Reg: reg}).Run(ctx)
}
