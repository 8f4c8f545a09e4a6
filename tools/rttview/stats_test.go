package rttview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowKeepsNewest(t *testing.T) {
	w := NewWindow(3)
	assert.Empty(t, w.Values())

	for _, x := range []float64{1, 2, 3, 4, 5} {
		w.Add(x)
	}
	assert.Equal(t, []float64{3, 4, 5}, w.Values())
}

func TestSummary(t *testing.T) {
	w := NewWindow(8)
	assert.Equal(t, Summary{}, w.Summary())

	w.Add(200)
	s := w.Summary()
	assert.Equal(t, 1, s.N)
	assert.Equal(t, 200.0, s.Mean)
	assert.Zero(t, s.StdDev)

	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		w.Add(x)
	}
	s = w.Summary()
	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-9)
	// gonum reports the unbiased (n-1) estimate.
	assert.InDelta(t, 2.138, s.StdDev, 1e-3)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
}
