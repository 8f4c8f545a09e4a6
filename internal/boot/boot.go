// Package boot brings up what every bus program needs: the console logger,
// the bus, the HAL and the embedded board config.
package boot

import (
	"context"
	"time"

	"bringup-go/bus"
	"bringup-go/services/config"
	"bringup-go/services/hal"
	"bringup-go/x/logx"
)

const busQueueLen = 8

var log = logx.New("main")

// Start returns a bus with the HAL and config services running.
func Start(ctx context.Context) *bus.Bus {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	logx.SetOutput(hal.Console())

	board := hal.SelectedBoard()
	log.Println("boot", "board", board.Name)

	b := bus.NewBus(busQueueLen)
	go hal.Run(ctx, b.NewConnection("hal"))

	cctx := context.WithValue(ctx, config.CtxDeviceKey, board.Name)
	config.NewConfigService().Start(cctx, b.NewConnection("config"))
	return b
}

// Console sets up logging only, for programs that drive pins directly.
func Console() hal.Board {
	time.Sleep(2 * time.Second)
	logx.SetOutput(hal.Console())
	board := hal.SelectedBoard()
	log.Println("boot", "board", board.Name)
	return board
}

// Check halts with a log line when a service failed to start.
func Check(err error) {
	if err != nil {
		log.Error("start failed", err)
		select {}
	}
}

// Pin fetches a board pin or halts with a log line.
func Pin(n int) hal.Pin {
	p, ok := hal.PinByNumber(n)
	if !ok {
		log.Println("no such pin", "n", n)
		select {}
	}
	return p
}
