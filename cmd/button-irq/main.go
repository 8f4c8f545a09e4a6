// Interrupt button: the pin interrupt toggles the LED through a critical
// section; the main loop prints what the handler counted.
package main

import (
	"context"
	"time"

	"bringup-go/internal/boot"
	"bringup-go/services/buttonled"
	"bringup-go/services/hal"
)

func main() {
	board := boot.Console()

	led := boot.Pin(board.LED)
	_ = led.ConfigureOutput(board.LEDActiveLow)
	btn := boot.Pin(board.Button)
	_ = btn.ConfigureInput(hal.ParsePull(board.ButtonPull))

	press := hal.EdgeRising
	if board.ButtonActiveLow {
		press = hal.EdgeFalling
	}
	b := buttonled.NewInterrupt(btn, press)
	if err := b.Attach(led); err != nil {
		println("[main] irq setup failed:", err.Error())
		select {}
	}
	b.Run(context.Background(), 20*time.Millisecond)
}
