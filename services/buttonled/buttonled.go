// Package buttonled toggles an LED from a button in three styles: a polling
// loop, a pin interrupt sharing the LED through a critical section, and a
// pair of bus tasks.
package buttonled

import "bringup-go/x/logx"

var log = logx.New("button")

// LED is the output being toggled.
type LED interface{ Toggle() }

// Button is a raw input line.
type Button interface{ Get() bool }
