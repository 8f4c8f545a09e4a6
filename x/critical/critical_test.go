package critical

import (
	"sync"
	"testing"
)

type led struct{ on bool }

func (l *led) toggle() { l.on = !l.on }

func TestSlotEmptyThenPut(t *testing.T) {
	var s Slot[*led]
	if s.With(func(l **led) { (*l).toggle() }) {
		t.Fatal("With on empty slot must report false")
	}

	l := &led{}
	s.Put(l)
	if !s.With(func(p **led) { (*p).toggle() }) {
		t.Fatal("With on filled slot must report true")
	}
	if !l.on {
		t.Fatal("handle not toggled")
	}

	got, ok := s.Take()
	if !ok || got != l {
		t.Fatal("Take should return the stored handle")
	}
	if _, ok := s.Take(); ok {
		t.Fatal("slot should be empty after Take")
	}
}

func TestSlotConcurrentToggles(t *testing.T) {
	var s Slot[led]
	s.Put(led{})

	const n = 1000
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.With(func(l *led) { l.toggle() })
		}()
	}
	wg.Wait()

	v, _ := s.Take()
	if v.on {
		t.Fatal("even number of toggles should leave the LED off")
	}
}

func TestCellUpdate(t *testing.T) {
	var c Cell[uint32]
	c.Store(2000)
	got := c.Update(func(v uint32) uint32 {
		if v-500 < 500 {
			return 2000
		}
		return v - 500
	})
	if got != 1500 || c.Load() != 1500 {
		t.Fatalf("Update = %d, Load = %d", got, c.Load())
	}
}

func TestGuardBorrowRef(t *testing.T) {
	var s Slot[led]
	var c Cell[int]

	g := Lock()
	if _, ok := s.Borrow(); ok {
		t.Fatal("Borrow on empty slot must report false")
	}
	g.Unlock()

	s.Put(led{})
	g = Lock()
	if l, ok := s.Borrow(); ok {
		l.toggle()
	}
	*c.Ref() += 2
	g.Unlock()

	if v, _ := s.Take(); !v.on {
		t.Fatal("borrowed value not updated in place")
	}
	if c.Load() != 2 {
		t.Fatalf("cell = %d, want 2", c.Load())
	}
}
