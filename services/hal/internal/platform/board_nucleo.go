//go:build stm32 && !stm32f4disco

package platform

// Nucleo-F446RE: LD2 on PA5, B1 on PC13 (external pull-up, active low),
// HC-SR04 on PC2 (trigger) / PC3 (echo).
var selected = Board{
	Name:            "nucleo_f446re",
	GPIOMax:         127,
	LED:             0*16 + 5,
	Button:          2*16 + 13,
	ButtonActiveLow: true,
	ButtonPull:      "none",
	Trigger:         2*16 + 2,
	Echo:            2*16 + 3,
}
