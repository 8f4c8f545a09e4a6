// services/hal/internal/gpioirq/irq_worker.go
package gpioirq

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"bringup-go/services/hal/internal/halcore"
)

// Event is one debounced logical edge.
type Event struct {
	DevID string
	Pin   int
	Level bool // logical level, inversion applied
	Edge  halcore.Edge
	TS    time.Time
}

// Worker moves pin interrupts out of interrupt context. Handlers only sample
// the pin and do a non-blocking send; debounce and edge classification run on
// the worker goroutine.
type Worker struct {
	isrQ chan isrSample

	mu      sync.RWMutex
	watches map[string]*watch // devID -> watch

	drops uint32 // ISR queue overflow
}

type isrSample struct {
	devID string
	level bool
	settle *watch // set for the re-read after a debounce window
}

type watch struct {
	devID     string
	pin       halcore.IRQPin
	edge      halcore.Edge // logical edges to report
	debounce  time.Duration
	invert    bool
	lastLevel bool // last reported logical level
	lastEvent time.Time
	pending   bool // a settle re-read is scheduled
	out       chan Event
}

func New(isrBuf int) *Worker {
	if isrBuf <= 0 {
		isrBuf = 32
	}
	return &Worker{
		isrQ:    make(chan isrSample, isrBuf),
		watches: map[string]*watch{},
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-w.isrQ:
				w.handle(s)
			}
		}
	}()
}

// Stream delivers events for one registration.
type Stream struct {
	w     *Worker
	devID string
	ch    chan Event
}

func (s *Stream) Events() <-chan Event { return s.ch }

// Close disarms the interrupt and closes the event channel.
func (s *Stream) Close() { s.w.remove(s.devID, s.ch) }

// Subscribe arms both physical edges on pin and reports the logical edges
// selected by edge. A second subscription for the same devID replaces the
// first.
func (w *Worker) Subscribe(devID string, pin halcore.IRQPin, edge halcore.Edge, debounce time.Duration, invert bool, buf int) (*Stream, error) {
	if buf <= 0 {
		buf = 4
	}
	initial := pin.Get() != invert
	wh := &watch{
		devID:     devID,
		pin:       pin,
		edge:      edge,
		debounce:  debounce,
		invert:    invert,
		lastLevel: initial,
		out:       make(chan Event, buf),
	}

	handler := func() {
		select {
		case w.isrQ <- isrSample{devID: devID, level: pin.Get()}:
		default:
			atomic.AddUint32(&w.drops, 1)
		}
	}

	w.mu.Lock()
	if old := w.watches[devID]; old != nil {
		_ = old.pin.ClearIRQ()
		close(old.out)
	}
	w.watches[devID] = wh
	w.mu.Unlock()

	if err := pin.SetIRQ(halcore.EdgeBoth, handler); err != nil {
		w.remove(devID, wh.out)
		return nil, err
	}
	return &Stream{w: w, devID: devID, ch: wh.out}, nil
}

func (w *Worker) remove(devID string, ch chan Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cur := w.watches[devID]
	if cur == nil || cur.out != ch {
		return
	}
	_ = cur.pin.ClearIRQ()
	delete(w.watches, devID)
	close(cur.out)
}

func (w *Worker) handle(s isrSample) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	wh := w.watches[s.devID]
	if wh == nil {
		return
	}
	if s.settle != nil {
		if s.settle != wh {
			return
		}
		wh.pending = false
	}
	level := s.level != wh.invert
	now := time.Now()

	// A change inside the window is not reported, but the pin is re-read
	// when the window closes so a short tap cannot leave lastLevel stale.
	if !wh.lastEvent.IsZero() && now.Sub(wh.lastEvent) < wh.debounce {
		if level != wh.lastLevel && !wh.pending {
			wh.pending = true
			w.settleAfter(wh, wh.debounce-now.Sub(wh.lastEvent))
		}
		return
	}
	if level == wh.lastLevel {
		return
	}

	e := halcore.EdgeFalling
	if level {
		e = halcore.EdgeRising
	}
	wh.lastLevel = level
	wh.lastEvent = now

	if wh.edge != halcore.EdgeBoth && wh.edge != e {
		return
	}
	select {
	case wh.out <- Event{DevID: s.devID, Pin: wh.pin.Number(), Level: level, Edge: e, TS: now}:
	default:
	}
}

func (w *Worker) settleAfter(wh *watch, d time.Duration) {
	time.AfterFunc(d, func() {
		select {
		case w.isrQ <- isrSample{devID: wh.devID, level: wh.pin.Get(), settle: wh}:
		default:
			// The next interrupt outside the window resynchronises.
			atomic.AddUint32(&w.drops, 1)
		}
	})
}

// ISRDrops counts samples lost because the ISR queue was full.
func (w *Worker) ISRDrops() uint32 { return atomic.LoadUint32(&w.drops) }
