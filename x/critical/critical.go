// Package critical guards state shared between interrupt handlers and
// main-line code. On MCU builds a section masks interrupts; on the host it
// holds a process-wide mutex so the same code runs under tests.
package critical

// Guard is an open section. Interrupt handlers use Lock/Unlock with Borrow
// and Ref instead of Section so no closure is built in interrupt context.
type Guard struct{ st state }

// Lock masks interrupts until Unlock. Sections do not nest.
func Lock() Guard { return Guard{st: enter()} }

func (g Guard) Unlock() { exit(g.st) }

// Section runs fn with interrupts masked. fn must be short and must not
// block, allocate or start another section.
func Section(fn func()) {
	g := Lock()
	defer g.Unlock()
	fn()
}

// Slot holds an optional value, typically a peripheral handle that main
// moves in once and interrupt handlers borrow afterwards.
type Slot[T any] struct {
	v  T
	ok bool
}

// Put stores v, replacing any previous value.
func (s *Slot[T]) Put(v T) {
	Section(func() {
		s.v = v
		s.ok = true
	})
}

// With runs fn on the stored value inside a section. It reports false, and
// does not call fn, when the slot is empty.
func (s *Slot[T]) With(fn func(v *T)) bool {
	var ok bool
	Section(func() {
		if !s.ok {
			return
		}
		ok = true
		fn(&s.v)
	})
	return ok
}

// Borrow returns the stored value in place. Call it only while holding a
// Guard and drop the pointer before Unlock.
func (s *Slot[T]) Borrow() (*T, bool) {
	if !s.ok {
		return nil, false
	}
	return &s.v, true
}

// Take removes and returns the stored value.
func (s *Slot[T]) Take() (T, bool) {
	var (
		v  T
		ok bool
	)
	Section(func() {
		v, ok = s.v, s.ok
		var zero T
		s.v, s.ok = zero, false
	})
	return v, ok
}

// Cell is a value that is always present.
type Cell[T any] struct{ v T }

func (c *Cell[T]) Load() T {
	var v T
	Section(func() { v = c.v })
	return v
}

func (c *Cell[T]) Store(v T) { Section(func() { c.v = v }) }

// Ref returns the value in place; same rules as Slot.Borrow.
func (c *Cell[T]) Ref() *T { return &c.v }

// Update applies fn to the value and returns the result.
func (c *Cell[T]) Update(fn func(T) T) T {
	var v T
	Section(func() {
		c.v = fn(c.v)
		v = c.v
	})
	return v
}
