// Ultrasonic ranger: the HAL polls the HC-SR04 and the ranger service logs
// echo time and distance.
package main

import (
	"context"

	"bringup-go/internal/boot"
	"bringup-go/services/ranger"
)

func main() {
	ctx := context.Background()
	b := boot.Start(ctx)
	boot.Check(ranger.New("front").Start(ctx, b.NewConnection("ranger")))
	select {}
}
