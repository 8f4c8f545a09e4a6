//go:build stm32

package platform

import (
	"io"
	"machine"
)

// ConsoleOut is the board's default serial (ST-LINK VCP on Nucleo).
func ConsoleOut() io.Writer { return machine.Serial }
