// Polled button: sample every 10 ms, toggle the LED on each press.
package main

import (
	"context"

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

	buttonled.NewPoller(btn, led, buttonled.PollConfig{ActiveLow: board.ButtonActiveLow}).Run(context.Background())
}
