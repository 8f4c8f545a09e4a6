package gpio_led

import (
	"context"
	"testing"
	"time"

	"bringup-go/errcode"
	"bringup-go/services/hal/internal/core"
	"bringup-go/services/hal/internal/haltest"
	"bringup-go/types"
)

func led(t *testing.T, ev core.Event) types.LEDValue {
	t.Helper()
	v, ok := ev.Payload.(types.LEDValue)
	if !ok {
		t.Fatalf("payload %T, want LEDValue", ev.Payload)
	}
	return v
}

func TestActiveLowLED(t *testing.T) {
	b := haltest.NewBoard(t)
	d, err := builder{}.Build(context.Background(), b.Input("user", Params{Pin: 5, ActiveLow: true}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := d.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	pin := b.Pins.Pin(5)

	ev := b.Out.Next(t, time.Second)
	if ev.Addr.Domain != "io" || ev.Addr.Name != "user" || led(t, ev).On {
		t.Fatalf("initial event %+v", ev)
	}
	if !pin.Get() {
		t.Fatal("active-low LED off must drive the pin high")
	}

	if r, _ := d.Control(ev.Addr, "toggle", nil); !r.OK {
		t.Fatal("toggle rejected")
	}
	if !led(t, b.Out.Next(t, time.Second)).On || pin.Get() {
		t.Fatal("toggle should turn the LED on (pin low)")
	}

	if r, _ := d.Control(ev.Addr, "set", map[string]any{"on": false}); !r.OK {
		t.Fatal("set rejected")
	}
	if led(t, b.Out.Next(t, time.Second)).On {
		t.Fatal("set off ignored")
	}

	if r, _ := d.Control(ev.Addr, "set", types.LEDSet{On: true}); !r.OK || !led(t, b.Out.Next(t, time.Second)).On {
		t.Fatal("typed set ignored")
	}

	if r, _ := d.Control(ev.Addr, "set", nil); r.Error != errcode.InvalidPayload {
		t.Fatalf("nil set: %+v", r)
	}
	if r, _ := d.Control(ev.Addr, "blink", nil); r.Error != errcode.Unsupported {
		t.Fatalf("unknown verb: %+v", r)
	}
}

func TestPinConflict(t *testing.T) {
	b := haltest.NewBoard(t)
	if _, err := (builder{}).Build(context.Background(), b.Input("a", map[string]any{"pin": 25})); err != nil {
		t.Fatal(err)
	}
	_, err := builder{}.Build(context.Background(), b.Input("b", map[string]any{"pin": 25}))
	if errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("err = %v, want pin_in_use", err)
	}
}
