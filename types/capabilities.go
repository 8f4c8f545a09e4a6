package types

// ------------------------
// Capability addressing & kinds
// ------------------------

type Kind string

const (
	KindLED    Kind = "led"
	KindButton Kind = "button"
	KindRange  Kind = "range"
)

// CapabilityAddress identifies a public capability on the bus.
type CapabilityAddress struct {
	Domain string `json:"domain"` // e.g. "io", "env"
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
}

// ------------------------
// Button
// ------------------------

type ButtonInfo struct {
	Pin  int    `json:"pin"`
	Edge string `json:"edge"`
}

type ButtonValue struct {
	Pressed bool `json:"pressed"`
}

// ------------------------
// LED
// ------------------------

type LEDInfo struct {
	Pin       int  `json:"pin"`
	ActiveLow bool `json:"active_low"`
}

type LEDValue struct {
	On bool `json:"on"`
}

type LEDSet struct {
	On bool `json:"on"`
}

// ------------------------
// Ultrasonic range
// ------------------------

type RangeInfo struct {
	Trigger   int    `json:"trigger"`
	Echo      int    `json:"echo"`
	TimeoutUs uint32 `json:"timeout_us"`
}

// RangeValue is one completed trigger/echo cycle.
type RangeValue struct {
	EchoUs     uint32  `json:"echo_us"`
	DistanceMM float32 `json:"distance_mm"`
}

// ------------------------
// Application state
// ------------------------

// LEDState is the retained app/led/state payload kept by the toggle task.
type LEDState struct {
	On      bool   `json:"on"`
	Toggles uint32 `json:"toggles"`
}
