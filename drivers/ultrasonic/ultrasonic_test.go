package ultrasonic

import (
	"context"
	"testing"
	"time"

	"bringup-go/errcode"
)

// stepClock advances one microsecond per read, so busy-wait loops make
// deterministic progress.
type stepClock struct{ t time.Duration }

func (c *stepClock) Now() time.Duration { c.t += time.Microsecond; return c.t }

// sensor models the echo line against the shared clock.
type sensor struct {
	clk       *stepClock
	lead      time.Duration
	width     time.Duration
	fellAt    time.Duration
	triggered bool
	stuck     bool
	highFor   time.Duration // how long trigger was held high
	roseAt    time.Duration
}

func (s *sensor) Set(level bool) {
	now := s.clk.t
	if level {
		s.roseAt = now
		return
	}
	s.highFor = now - s.roseAt
	s.fellAt = now
	s.triggered = true
}

func (s *sensor) Get() bool {
	if !s.triggered || s.width == 0 {
		return false
	}
	dt := s.clk.t - s.fellAt
	if s.stuck {
		return dt >= s.lead
	}
	return dt >= s.lead && dt < s.lead+s.width
}

func TestDistanceFormula(t *testing.T) {
	if got := DistanceMM(1000); got != 170 {
		t.Fatalf("DistanceMM(1000) = %v, want 170", got)
	}
	if got := DistanceMM(0); got != 0 {
		t.Fatalf("DistanceMM(0) = %v", got)
	}
}

func TestMeasure(t *testing.T) {
	clk := &stepClock{}
	s := &sensor{clk: clk, lead: 200 * time.Microsecond, width: 1176 * time.Microsecond}
	d := New(s, s, clk, Config{})

	r, err := d.Measure(context.Background())
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if s.highFor < 10*time.Microsecond || s.highFor > 12*time.Microsecond {
		t.Fatalf("trigger pulse %v, want ~10µs", s.highFor)
	}
	// Each loop iteration reads the clock twice; allow a few µs of slack.
	if r.EchoUs < 1170 || r.EchoUs > 1182 {
		t.Fatalf("EchoUs = %d, want ~1176", r.EchoUs)
	}
	if r.DistanceMM != DistanceMM(r.EchoUs) {
		t.Fatalf("distance %v does not follow echo %d", r.DistanceMM, r.EchoUs)
	}
}

func TestMeasureNoEcho(t *testing.T) {
	clk := &stepClock{}
	s := &sensor{clk: clk}
	d := New(s, s, clk, Config{EchoStartTimeout: time.Millisecond})

	_, err := d.Measure(context.Background())
	if errcode.Of(err) != errcode.Timeout {
		t.Fatalf("err = %v, want timeout", err)
	}
}

func TestMeasureStuckEcho(t *testing.T) {
	clk := &stepClock{}
	s := &sensor{clk: clk, lead: 5 * time.Microsecond, width: time.Microsecond, stuck: true}
	d := New(s, s, clk, Config{MaxEcho: 2 * time.Millisecond})

	_, err := d.Measure(context.Background())
	if errcode.Of(err) != errcode.EchoStuck {
		t.Fatalf("err = %v, want echo_stuck", err)
	}
}

func TestDefaults(t *testing.T) {
	c := New(nil, nil, nil, Config{}).Config()
	if c.TriggerPulse != 10*time.Microsecond || c.EchoStartTimeout != 30*time.Millisecond || c.MaxEcho != 38*time.Millisecond {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	c = New(nil, nil, nil, Config{MaxEcho: NoTimeout}).Config()
	if c.MaxEcho != NoTimeout {
		t.Fatal("NoTimeout must survive defaults")
	}
}

func TestMeasureCancelled(t *testing.T) {
	clk := &stepClock{}
	s := &sensor{clk: clk, width: time.Millisecond}
	d := New(s, s, clk, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Measure(ctx); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if s.triggered {
		t.Fatal("trigger pulsed after cancel")
	}
}

func TestMeasureNoTimeoutWaitsPastDefaults(t *testing.T) {
	clk := &stepClock{}
	// Both the rise delay and the echo width exceed the 30 ms / 38 ms defaults.
	s := &sensor{clk: clk, lead: 45 * time.Millisecond, width: 50 * time.Millisecond}
	d := New(s, s, clk, Config{EchoStartTimeout: NoTimeout, MaxEcho: NoTimeout})

	r, err := d.Measure(context.Background())
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if r.EchoUs < 49990 || r.EchoUs > 50010 {
		t.Fatalf("EchoUs = %d, want ~50000", r.EchoUs)
	}

	// The same sensor fails under the defaults.
	clk2 := &stepClock{}
	s2 := &sensor{clk: clk2, lead: 45 * time.Millisecond, width: 50 * time.Millisecond}
	if _, err := New(s2, s2, clk2, Config{}).Measure(context.Background()); errcode.Of(err) != errcode.Timeout {
		t.Fatalf("default bounds: err = %v, want timeout", err)
	}
}
