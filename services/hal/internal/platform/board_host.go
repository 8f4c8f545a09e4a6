//go:build !(rp2040 || rp2350 || stm32)

package platform

// host mirrors the Pico pinout on simulated pins.
var selected = Board{
	Name:            "host",
	GPIOMax:         40,
	LED:             25,
	Button:          15,
	ButtonActiveLow: true,
	ButtonPull:      "up",
	Trigger:         2,
	Echo:            3,
}
