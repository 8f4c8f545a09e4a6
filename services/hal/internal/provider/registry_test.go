package provider

import (
	"context"
	"testing"
	"time"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/gpioirq"
	"bringup-go/services/hal/internal/halcore"
	"bringup-go/services/hal/internal/simpin"
)

func TestClaimRelease(t *testing.T) {
	r := New(simpin.NewFactory(8), nil, nil)

	if _, err := r.ClaimPin("led", 3); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := r.ClaimPin("led", 3); err != nil {
		t.Fatalf("re-claim by owner: %v", err)
	}
	if _, err := r.ClaimPin("button", 3); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("err = %v, want pin_in_use", err)
	}
	if _, err := r.ClaimPin("button", 99); errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("err = %v, want unknown_pin", err)
	}

	r.ReleasePin("button", 3) // not the owner
	if id, _ := r.Owner(3); id != "led" {
		t.Fatalf("owner = %q", id)
	}
	r.ReleasePin("led", 3)
	if _, err := r.ClaimPin("button", 3); err != nil {
		t.Fatalf("claim after release: %v", err)
	}
}

func TestSubscribeEdges(t *testing.T) {
	f := simpin.NewFactory(8)
	w := gpioirq.New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	r := New(f, nil, w)

	if _, err := r.SubscribeGPIOEdges("btn", 5, halcore.EdgeBoth, 0, false, 4); err == nil {
		t.Fatal("edges on unclaimed pin should fail")
	}
	p, _ := r.ClaimPin("btn", 5)
	_ = p.ConfigureInput(halcore.PullNone)

	s, err := r.SubscribeGPIOEdges("btn", 5, halcore.EdgeRising, 0, false, 4)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer s.Close()

	f.Pin(5).Drive(true)
	select {
	case ev := <-s.Events():
		if ev.Edge != halcore.EdgeRising || !ev.Level || ev.Pin != 5 {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("no edge event")
	}

	if _, err := New(f, nil, nil).SubscribeGPIOEdges("btn", 5, halcore.EdgeBoth, 0, false, 1); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("no worker: err = %v", err)
	}
}
