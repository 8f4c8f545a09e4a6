// Minimal timer blink: no bus, no HAL service, just the board LED.
package main

import (
	"time"

	"bringup-go/internal/boot"
	"bringup-go/x/logx"
)

func main() {
	board := boot.Console()
	log := logx.New("blink")

	led := boot.Pin(board.LED)
	_ = led.ConfigureOutput(board.LEDActiveLow) // off

	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	var n uint32
	for range tick.C {
		led.Toggle()
		n++
		log.Println("toggle", "n", n)
	}
}
