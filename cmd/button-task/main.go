// Task button: HAL button events drive a toggle task; a reporter prints the
// LED state every two seconds.
package main

import (
	"context"

	"bringup-go/internal/boot"
	"bringup-go/services/buttonled"
)

func main() {
	ctx := context.Background()
	b := boot.Start(ctx)
	boot.Check(buttonled.NewTasks("user", "user").Start(ctx, b.NewConnection("buttonled")))
	select {}
}
