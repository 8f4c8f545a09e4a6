// Bus blink: the blink service toggles the HAL LED; the user button cycles
// the period.
package main

import (
	"context"

	"bringup-go/internal/boot"
	"bringup-go/services/blink"
)

func main() {
	ctx := context.Background()
	b := boot.Start(ctx)
	boot.Check(blink.New("user", "user").Start(ctx, b.NewConnection("blink")))
	select {}
}
