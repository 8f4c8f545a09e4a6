// services/hal/internal/halcore/types_test.go

package halcore

import (
	"testing"
	"time"
)

func TestEdgeRoundTrip(t *testing.T) {
	for _, e := range []Edge{EdgeNone, EdgeRising, EdgeFalling, EdgeBoth} {
		if ParseEdge(e.String()) != e {
			t.Fatalf("edge %d does not round-trip via %q", e, e.String())
		}
	}
	if ParseEdge("sideways") != EdgeNone {
		t.Fatal("unknown edge should map to none")
	}
}

func TestParsePull(t *testing.T) {
	if ParsePull("up") != PullUp || ParsePull("down") != PullDown || ParsePull("") != PullNone {
		t.Fatal("ParsePull mapping incorrect")
	}
}

// stepClock advances by one microsecond on every read.
type stepClock struct{ t time.Duration }

func (c *stepClock) Now() time.Duration { c.t += time.Microsecond; return c.t }

func TestBusyWait(t *testing.T) {
	clk := &stepClock{}
	BusyWait(clk, 10*time.Microsecond)
	if clk.t < 11*time.Microsecond || clk.t > 12*time.Microsecond {
		t.Fatalf("busy wait spun to %v", clk.t)
	}
}

func TestMonoClockAdvances(t *testing.T) {
	c := MonoClock()
	a := c.Now()
	time.Sleep(time.Millisecond)
	if c.Now() <= a {
		t.Fatal("clock did not advance")
	}
}
