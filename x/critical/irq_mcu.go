//go:build rp2040 || rp2350 || stm32

package critical

import "runtime/interrupt"

func enter() interrupt.State  { return interrupt.Disable() }
func exit(st interrupt.State) { interrupt.Restore(st) }
