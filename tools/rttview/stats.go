package rttview

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Window keeps the last N samples.
type Window struct {
	buf  []float64
	next int
	full bool
}

func NewWindow(n int) *Window {
	if n <= 0 {
		n = 1
	}
	return &Window{buf: make([]float64, n)}
}

func (w *Window) Add(x float64) {
	w.buf[w.next] = x
	w.next = (w.next + 1) % len(w.buf)
	if w.next == 0 {
		w.full = true
	}
}

// Values returns the samples held, oldest first.
func (w *Window) Values() []float64 {
	if !w.full {
		return append([]float64(nil), w.buf[:w.next]...)
	}
	out := make([]float64, 0, len(w.buf))
	out = append(out, w.buf[w.next:]...)
	return append(out, w.buf[:w.next]...)
}

// Summary describes a window.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func (w *Window) Summary() Summary {
	xs := w.Values()
	if len(xs) == 0 {
		return Summary{}
	}
	s := Summary{N: len(xs), Min: floats.Min(xs), Max: floats.Max(xs)}
	if len(xs) == 1 {
		s.Mean = xs[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	return s
}
