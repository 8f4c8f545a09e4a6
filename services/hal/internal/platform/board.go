// Package platform binds the HAL to the target: board pinout, GPIO pin
// factory and debug console. The board is chosen by build tags.
package platform

// Board is the pinout used by the exercises. Pin numbers follow the target's
// machine.Pin numbering (GPn on RP2, port*16+n on STM32).
type Board struct {
	Name    string
	GPIOMax int

	LED          int
	LEDActiveLow bool

	Button          int
	ButtonActiveLow bool // pressed pulls the line low
	ButtonPull      string

	Trigger int
	Echo    int

	Console Console
}

// Console is the debug UART. Zero TX/RX means the target's default stdout.
type Console struct {
	TX, RX int
	Baud   uint32
}

// Selected is the board compiled in.
func Selected() Board { return selected }
