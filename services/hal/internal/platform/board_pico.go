//go:build rp2040 || rp2350

package platform

var selected = Board{
	Name:            "pico",
	GPIOMax:         28,
	LED:             25,
	Button:          15,
	ButtonActiveLow: true,
	ButtonPull:      "up",
	Trigger:         2,
	Echo:            3,
	Console:         Console{TX: 0, RX: 1, Baud: 115200},
}
