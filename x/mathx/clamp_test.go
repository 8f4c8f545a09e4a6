package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 10, 20); got != 10 {
		t.Fatalf("Clamp low = %d", got)
	}
	if got := Clamp(25, 20, 10); got != 20 {
		t.Fatalf("Clamp swapped bounds = %d", got)
	}
	if got := Clamp(float32(1.5), 0, 2); got != 1.5 {
		t.Fatalf("Clamp inside = %v", got)
	}
	if !Between(uint32(3), 5, 1) || Between(7, 1, 5) {
		t.Fatal("Between")
	}
}

func TestNextIn(t *testing.T) {
	ring := []uint32{2000, 1500, 1000, 500}
	cur := uint32(2000)
	var seen []uint32
	for i := 0; i < 5; i++ {
		cur = NextIn(ring, cur)
		seen = append(seen, cur)
	}
	want := []uint32{1500, 1000, 500, 2000, 1500}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("step %d: got %d want %d", i, seen[i], want[i])
		}
	}
	if NextIn(ring, 42) != 2000 {
		t.Fatal("absent value should restart the ring")
	}
	if NextIn(nil, uint32(9)) != 9 {
		t.Fatal("empty ring should keep current")
	}
}
