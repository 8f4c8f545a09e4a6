package ranger

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"bringup-go/bus"
	"bringup-go/errcode"
	"bringup-go/types"
	"bringup-go/x/logx"
)

type syncBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuf) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuf) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStartsPollingWhenHALReady(t *testing.T) {
	b := bus.NewBus(16)
	conn := b.NewConnection("test")
	ctrl := conn.Subscribe(bus.T("hal", "cap", "env", "range", "front", "control", "+"))
	conn.Publish(conn.NewMessage(bus.T("config", "ranger"), map[string]any{"interval_ms": float64(250)}, true))

	ctx, cancel := context.WithCancel(context.Background())
	s := New("front")
	if err := s.Start(ctx, conn); err != nil {
		t.Fatalf("Start: %v", err)
	}

	select {
	case m := <-ctrl.Channel():
		t.Fatalf("control sent before HAL ready: %v", m.Topic)
	case <-time.After(30 * time.Millisecond):
	}

	conn.Publish(conn.NewMessage(bus.T("hal", "state"), types.HALState{Level: "ready"}, true))
	select {
	case m := <-ctrl.Channel():
		ps, ok := m.Payload.(types.PollStart)
		if m.Topic.At(6) != "poll_start" || !ok || ps.IntervalMs != 250 || ps.Verb != "read" {
			t.Fatalf("unexpected control %v %#v", m.Topic, m.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("poll_start not sent")
	}

	cancel()
	select {
	case m := <-ctrl.Channel():
		if m.Topic.At(6) != "poll_stop" {
			t.Fatalf("expected poll_stop, got %v", m.Topic)
		}
	case <-time.After(time.Second):
		t.Fatal("poll_stop not sent on shutdown")
	}
}

func TestLogsReadingsAndFailures(t *testing.T) {
	out := &syncBuf{}
	logx.SetOutput(out)
	defer logx.SetOutput(nil)

	b := bus.NewBus(16)
	conn := b.NewConnection("test")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New("front")
	if err := s.Start(ctx, conn); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	base := bus.T("hal", "cap", "env", "range", "front")
	conn.Publish(conn.NewMessage(base.Append("value"), types.RangeValue{EchoUs: 1176, DistanceMM: 199.92}, true))
	eventually(t, "reading", func() bool { return s.Stats().Readings == 1 })

	st := s.Stats()
	if st.Last.EchoUs != 1176 || st.Smoothed != 199.9 {
		t.Fatalf("stats = %+v", st)
	}
	if !strings.Contains(out.String(), "[ranger] measured echo_us=1176 distance_mm=199.92 smoothed_mm=199.90\n") {
		t.Fatalf("log = %q", out.String())
	}

	conn.Publish(conn.NewMessage(base.Append("status"),
		types.CapabilityStatus{Link: types.LinkDegraded, TSms: 42, Error: "timeout"}, true))
	eventually(t, "failure", func() bool { return s.Stats().Failures == 1 })
	if !strings.Contains(out.String(), "[ranger] no distance measured err=timeout\n") {
		t.Fatalf("log = %q", out.String())
	}

	// Status "up" after a good reading is not a failure.
	conn.Publish(conn.NewMessage(base.Append("status"), types.CapabilityStatus{Link: types.LinkUp, TSms: 43}, true))
	time.Sleep(20 * time.Millisecond)
	if s.Stats().Failures != 1 {
		t.Fatal("up status counted as failure")
	}
}

func TestStartRequiresName(t *testing.T) {
	conn := bus.NewBus(4).NewConnection("t")
	if err := New("").Start(context.Background(), conn); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("err = %v, want invalid_params", err)
	}
}
