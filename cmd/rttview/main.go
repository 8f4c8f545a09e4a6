// rttview follows a board's debug console over a serial port and prints
// ranger statistics and LED/button activity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bringup-go/tools/rttview"
)

func main() {
	configPath := flag.String("config", "rttview.yaml", "path to configuration file")
	port := flag.String("port", "", "serial port (overrides config)")
	baud := flag.Int("baud", 0, "baud rate (overrides config)")
	list := flag.Bool("list", false, "list serial ports and exit")
	flag.Parse()

	if *list {
		ports, err := rttview.Ports()
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		if len(ports) == 0 {
			fmt.Println("no serial ports found")
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	cfg, err := rttview.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *baud > 0 {
		cfg.Serial.Baud = *baud
	}

	sp, err := rttview.Open(cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sp.Close()
	log.Printf("Connected to %s at %d baud", cfg.Serial.Port, cfg.Serial.Baud)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := rttview.NewViewer(cfg)
	if err := rttview.Run(ctx, sp, v, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Error: %v", err)
	}
}
