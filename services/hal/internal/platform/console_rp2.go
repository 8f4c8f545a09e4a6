//go:build rp2040 || rp2350

package platform

import (
	"io"
	"machine"
	"sync"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

var consoleOnce sync.Once

// ConsoleOut is UART0 at the board's console pins. USB CDC stays free for
// flashing.
func ConsoleOut() io.Writer {
	consoleOnce.Do(func() {
		c := selected.Console
		_ = uartx.UART0.Configure(uartx.UARTConfig{
			BaudRate: c.Baud,
			TX:       machine.Pin(c.TX),
			RX:       machine.Pin(c.RX),
		})
	})
	return uartx.UART0
}
