// Package ultrasonic drives trigger/echo ranging sensors such as the HC-SR04.
// A measurement cycle is:
//
//	trigger high for TriggerPulse, then low
//	busy-wait until echo rises      (bounded by EchoStartTimeout)
//	busy-wait until echo falls      (bounded by MaxEcho)
//	distance_mm = echo_us * 0.17
//
// The sound round trip at ~340 m/s covers 0.34 mm/µs, half of which is the
// distance to the target. Everything runs on the caller's goroutine; echo
// timing relies on the busy-wait not being preempted.
package ultrasonic

import (
	"context"
	"time"

	"bringup-go/errcode"
)

// MMPerMicrosecond converts echo width to target distance.
const MMPerMicrosecond = 0.17

// NoTimeout disables a bound and waits forever.
const NoTimeout time.Duration = -1

// OutputPin is the trigger line.
type OutputPin interface{ Set(level bool) }

// InputPin is the echo line.
type InputPin interface{ Get() bool }

// Clock is a free-running counter with microsecond resolution or better.
type Clock interface{ Now() time.Duration }

// Config is optional; zero fields take defaults.
type Config struct {
	// TriggerPulse defaults to 10 µs.
	TriggerPulse time.Duration
	// EchoStartTimeout bounds the wait for the echo to rise. Default 30 ms.
	EchoStartTimeout time.Duration
	// MaxEcho bounds the echo high time. Default 38 ms, the HC-SR04's
	// "no obstacle" pulse.
	MaxEcho time.Duration
}

func (c Config) withDefaults() Config {
	if c.TriggerPulse <= 0 {
		c.TriggerPulse = 10 * time.Microsecond
	}
	if c.EchoStartTimeout == 0 {
		c.EchoStartTimeout = 30 * time.Millisecond
	}
	if c.MaxEcho == 0 {
		c.MaxEcho = 38 * time.Millisecond
	}
	return c
}

// Reading is one completed cycle.
type Reading struct {
	Echo       time.Duration
	EchoUs     uint32
	DistanceMM float32
}

// Device is one sensor on a trigger/echo pin pair. It is not safe for
// concurrent Measure calls; the HAL device serialises them.
type Device struct {
	trigger OutputPin
	echo    InputPin
	clk     Clock
	cfg     Config
}

// New binds a sensor to already configured pins: trigger as a push-pull
// output driven low, echo as an input (pull-down recommended).
func New(trigger OutputPin, echo InputPin, clk Clock, cfg Config) *Device {
	return &Device{trigger: trigger, echo: echo, clk: clk, cfg: cfg.withDefaults()}
}

// Config returns the effective configuration, defaults applied.
func (d *Device) Config() Config { return d.cfg }

// DistanceMM applies the echo-width formula.
func DistanceMM(echoUs uint32) float32 { return float32(echoUs) * MMPerMicrosecond }

// Measure runs one trigger/echo cycle. It returns errcode.Timeout when the
// echo never rises and errcode.EchoStuck when it never falls. The context is
// only checked before the pulse; the busy-waits are bounded by Config.
func (d *Device) Measure(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}
	d.trigger.Set(true)
	d.spin(d.cfg.TriggerPulse)
	d.trigger.Set(false)

	t0 := d.clk.Now()
	for !d.echo.Get() {
		if expired(d.clk.Now()-t0, d.cfg.EchoStartTimeout) {
			return Reading{}, errcode.Wrap(errcode.Timeout, "ultrasonic: echo start", nil)
		}
	}

	start := d.clk.Now()
	for d.echo.Get() {
		if expired(d.clk.Now()-start, d.cfg.MaxEcho) {
			return Reading{}, errcode.Wrap(errcode.EchoStuck, "ultrasonic: echo end", nil)
		}
	}
	echo := d.clk.Now() - start

	us := uint32(echo / time.Microsecond)
	return Reading{Echo: echo, EchoUs: us, DistanceMM: DistanceMM(us)}, nil
}

// spin mirrors halcore.BusyWait. drivers/ depends only on errcode so it
// stays usable outside services/hal, whose halcore is internal.
func (d *Device) spin(dur time.Duration) {
	t := d.clk.Now()
	for d.clk.Now()-t < dur {
	}
}

func expired(elapsed, limit time.Duration) bool {
	return limit != NoTimeout && elapsed > limit
}
