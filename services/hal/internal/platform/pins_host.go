//go:build !(rp2040 || rp2350 || stm32)

package platform

import (
	"io"
	"os"
	"sync"
	"time"

	"bringup-go/services/hal/internal/halcore"
	"bringup-go/services/hal/internal/simpin"
)

// SimEchoWidth is the host ranger's echo: 1176 µs, about 200 mm.
const SimEchoWidth = 1176 * time.Microsecond

var (
	simOnce sync.Once
	sim     *simpin.Factory
	simEcho *simpin.Echo
)

// Sim returns the simulated pins, with an echo responder on the ranger pins.
func Sim() *simpin.Factory {
	simOnce.Do(func() {
		sim = simpin.NewFactory(selected.GPIOMax)
		simEcho = simpin.AttachEcho(sim.Pin(selected.Trigger), sim.Pin(selected.Echo),
			halcore.MonoClock(), 150*time.Microsecond, SimEchoWidth)
	})
	return sim
}

// SimEcho adjusts the simulated target.
func SimEcho() *simpin.Echo {
	Sim()
	return simEcho
}

func Pins() halcore.PinFactory { return Sim() }

func ConsoleOut() io.Writer { return os.Stdout }
