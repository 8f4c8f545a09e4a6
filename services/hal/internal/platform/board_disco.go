//go:build stm32f4disco

package platform

// STM32F4-Discovery: LD4 on PD12, user button on PA0 (active high).
var selected = Board{
	Name:       "stm32f4disco",
	GPIOMax:    127,
	LED:        3*16 + 12,
	Button:     0,
	ButtonPull: "down",
	Trigger:    2*16 + 2,
	Echo:       2*16 + 3,
}
