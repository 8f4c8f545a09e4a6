//go:build !(rp2040 || rp2350 || stm32)

package critical

import "sync"

var hostMu sync.Mutex

type state struct{}

func enter() state { hostMu.Lock(); return state{} }
func exit(state)   { hostMu.Unlock() }
