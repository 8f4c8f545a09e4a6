package buttonled

import (
	"context"
	"time"

	"bringup-go/bus"
	"bringup-go/errcode"
	"bringup-go/services/config"
	"bringup-go/types"
	"bringup-go/x/critical"
	"bringup-go/x/timex"
)

var (
	topicConfigButtonLED = bus.T("config", "buttonled")
	topicLEDState        = bus.T("app", "led", "state")
)

type TaskConfig struct {
	ReportMs uint32 `json:"report_ms"`
}

// Tasks runs the task-based variant over the bus: a toggle task bound to
// the button's pressed events and a reporter that prints the shared state.
type Tasks struct {
	LED    string
	Button string

	state critical.Cell[types.LEDState]
}

func NewTasks(led, button string) *Tasks {
	return &Tasks{LED: led, Button: button}
}

// State is the last recorded LED state.
func (t *Tasks) State() types.LEDState { return t.state.Load() }

// Start launches both tasks.
func (t *Tasks) Start(ctx context.Context, conn *bus.Connection) error {
	if t.LED == "" || t.Button == "" {
		return &errcode.E{C: errcode.InvalidParams, Op: "buttonled", Msg: "led and button capabilities are required"}
	}
	ledVal := conn.Subscribe(bus.T("hal", "cap", "io", "led", t.LED, "value"))
	presses := conn.Subscribe(bus.T("hal", "cap", "io", "button", t.Button, "event", "pressed"))
	cfg := conn.Subscribe(topicConfigButtonLED)
	go t.toggleTask(ctx, conn, ledVal, presses)
	go t.reportTask(ctx, conn, cfg)
	return nil
}

func (t *Tasks) toggleTask(ctx context.Context, conn *bus.Connection, ledVal, presses *bus.Subscription) {
	defer conn.Unsubscribe(ledVal)
	defer conn.Unsubscribe(presses)
	toggle := bus.T("hal", "cap", "io", "led", t.LED, "control", "toggle")

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-ledVal.Channel():
			// The HAL's value is authoritative; it also seeds the state.
			if v, ok := m.Payload.(types.LEDValue); ok {
				t.record(conn, func(s types.LEDState) types.LEDState { s.On = v.On; return s })
			}
		case <-presses.Channel():
			conn.Publish(conn.NewMessage(toggle, nil, false))
			t.record(conn, func(s types.LEDState) types.LEDState {
				s.On = !s.On
				s.Toggles++
				return s
			})
		}
	}
}

func (t *Tasks) record(conn *bus.Connection, fn func(types.LEDState) types.LEDState) {
	prev := t.state.Load()
	s := t.state.Update(fn)
	if s != prev {
		conn.Publish(conn.NewMessage(topicLEDState, s, true))
	}
}

func (t *Tasks) reportTask(ctx context.Context, conn *bus.Connection, cfg *bus.Subscription) {
	defer conn.Unsubscribe(cfg)
	tick := time.NewTicker(2 * time.Second)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-cfg.Channel():
			var c TaskConfig
			if err := config.Decode(m.Payload, &c); err != nil {
				log.Error("bad config", err)
				continue
			}
			tick.Reset(timex.Ms(c.ReportMs, 2*time.Second))
		case <-tick.C:
			if t.state.Load().On {
				log.Println("LED is ON")
			} else {
				log.Println("LED is OFF")
			}
		}
	}
}
