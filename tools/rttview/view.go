package rttview

import (
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Viewer accumulates what the firmware reports.
type Viewer struct {
	cfg *Config

	Distance *Window
	Readings int
	Failures map[string]int // by error code
	Toggles  int            // LED toggles seen ("toggle" and "Led toggled")
	IRQs     int            // highest interrupt count reported
	LEDOn    bool
	Unparsed int
}

func NewViewer(cfg *Config) *Viewer {
	return &Viewer{cfg: cfg, Distance: NewWindow(cfg.View.Window), Failures: map[string]int{}}
}

// Feed consumes one raw line and reports whether it should be echoed.
func (v *Viewer) Feed(raw string) bool {
	l, ok := ParseLine(raw)
	if !ok {
		v.Unparsed++
		return v.cfg.View.ShowUnknown
	}

	switch {
	case l.Tag == "ranger" && l.Msg == "measured":
		if d, ok := l.Float("distance_mm"); ok {
			v.Distance.Add(d)
			v.Readings++
		}
	case l.Tag == "ranger" && l.Msg == "no distance measured":
		v.Failures[l.Fields["err"]]++
	case l.Msg == "toggle" || l.Msg == "Led toggled":
		v.Toggles++
	case l.Msg == "Interrupt":
		if n, err := strconv.Atoi(l.Fields["n"]); err == nil && n > v.IRQs {
			v.IRQs = n
		}
	case l.Msg == "LED is ON":
		v.LEDOn = true
	case l.Msg == "LED is OFF":
		v.LEDOn = false
	}

	return len(v.cfg.View.Tags) == 0 || slices.Contains(v.cfg.View.Tags, l.Tag)
}

// Report writes a summary block.
func (v *Viewer) Report(w io.Writer) {
	s := v.Distance.Summary()
	fmt.Fprintf(w, "-- distance: n=%d mean=%.1fmm sd=%.1fmm min=%.1fmm max=%.1fmm (readings %d)\n",
		s.N, s.Mean, s.StdDev, s.Min, s.Max, v.Readings)

	codes := make([]string, 0, len(v.Failures))
	for c := range v.Failures {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	for _, c := range codes {
		fmt.Fprintf(w, "-- failures: %s=%d\n", c, v.Failures[c])
	}

	led := "off"
	if v.LEDOn {
		led = "on"
	}
	fmt.Fprintf(w, "-- led: %s toggles=%d irqs=%d unparsed=%d\n", led, v.Toggles, v.IRQs, v.Unparsed)
}
