package rttview

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Open opens the configured serial port.
func Open(cfg *Config) (serial.Port, error) {
	port, err := serial.Open(cfg.Serial.Port, &serial.Mode{BaudRate: cfg.Serial.Baud})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Serial.Port, err)
	}
	return port, nil
}

// Ports lists serial ports present on the host.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// Run feeds lines from r to v, echoing selected lines to out and writing a
// summary every cfg.View.Interval. It returns at EOF or when ctx ends; a
// reader blocked in Read is left to the caller to close.
func Run(ctx context.Context, r io.Reader, v *Viewer, out io.Writer) error {
	lines := make(chan string, 64)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()

	tick := time.NewTicker(v.cfg.View.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			v.Report(out)
			return ctx.Err()
		case <-tick.C:
			v.Report(out)
		case l, ok := <-lines:
			if !ok {
				v.Report(out)
				if err := <-errc; err != nil {
					return fmt.Errorf("read failed: %w", err)
				}
				return nil
			}
			if v.Feed(l) {
				fmt.Fprintln(out, l)
			}
		}
	}
}
