package rttview

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `boot banner
[ranger] polling interval_ms=100
[ranger] measured echo_us=1176 distance_mm=199.92 smoothed_mm=199.90
[ranger] measured echo_us=1182 distance_mm=200.94 smoothed_mm=200.20
[ranger] no distance measured err=timeout
[ranger] no distance measured err=timeout
[ranger] no distance measured err=echo_stuck
[blink] toggle n=1
[button] Interrupt n=3
[button] Led toggled n=2
[button] LED is ON
`

func TestViewerFeed(t *testing.T) {
	v := NewViewer(Default())
	for _, l := range strings.Split(strings.TrimSpace(sample), "\n") {
		v.Feed(l)
	}

	assert.Equal(t, 2, v.Readings)
	assert.Equal(t, map[string]int{"timeout": 2, "echo_stuck": 1}, v.Failures)
	assert.Equal(t, 2, v.Toggles)
	assert.Equal(t, 3, v.IRQs)
	assert.True(t, v.LEDOn)
	assert.Equal(t, 1, v.Unparsed)

	s := v.Distance.Summary()
	assert.InDelta(t, 200.43, s.Mean, 1e-9)
}

func TestViewerTagFilter(t *testing.T) {
	cfg := Default()
	cfg.View.Tags = []string{"button"}
	v := NewViewer(cfg)

	assert.False(t, v.Feed("[ranger] measured distance_mm=1"))
	assert.True(t, v.Feed("[button] LED is OFF"))
	assert.False(t, v.Feed("noise"))

	cfg.View.ShowUnknown = true
	assert.True(t, v.Feed("noise"))
	// Filtered lines still count.
	assert.Equal(t, 1, v.Readings)
}

func TestRunUntilEOF(t *testing.T) {
	cfg := Default()
	cfg.View.Tags = []string{"ranger"}
	v := NewViewer(cfg)
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, Run(ctx, strings.NewReader(sample), v, &out))

	text := out.String()
	assert.Contains(t, text, "[ranger] measured echo_us=1176")
	assert.NotContains(t, text, "[blink]")
	assert.Contains(t, text, "-- distance: n=2 mean=200.4mm")
	assert.Contains(t, text, "-- failures: echo_stuck=1")
	assert.Contains(t, text, "-- failures: timeout=2")
	assert.Contains(t, text, "-- led: on toggles=2 irqs=3 unparsed=1")
}

type blockingReader struct{ done chan struct{} }

func (b blockingReader) Read([]byte) (int, error) {
	<-b.done
	return 0, context.Canceled
}

func TestRunStopsOnCancel(t *testing.T) {
	r := blockingReader{done: make(chan struct{})}
	defer close(r.done)

	v := NewViewer(Default())
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	var out bytes.Buffer
	go func() { errc <- Run(ctx, r, v, &out) }()

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
