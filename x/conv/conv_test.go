package conv

import "testing"

func TestItoaUtoa(t *testing.T) {
	var buf [24]byte
	for _, c := range []struct {
		n    int64
		want string
	}{{0, "0"}, {7, "7"}, {-42, "-42"}, {1234567890, "1234567890"}} {
		if got := string(Itoa(buf[:], c.n)); got != c.want {
			t.Fatalf("Itoa(%d) = %q, want %q", c.n, got, c.want)
		}
	}
	if got := string(Utoa(buf[:], 18446744073709551615)); got != "18446744073709551615" {
		t.Fatalf("Utoa max = %q", got)
	}
	if got := string(Itoa(buf[:20], -9223372036854775808)); got != "-9223372036854775808" {
		t.Fatalf("Itoa min = %q", got)
	}
	if got := Utoa(nil, 5); len(got) != 0 {
		t.Fatalf("Utoa into empty buf = %q", got)
	}
}

func TestFixed(t *testing.T) {
	buf := make([]byte, 0, 32)
	for _, c := range []struct {
		v    float32
		dec  int
		want string
	}{
		{0, 2, "0.00"},
		{199.92, 2, "199.92"},
		{1.005, 1, "1.0"},
		{0.05, 2, "0.05"},
		{-3.5, 1, "-3.5"},
		{-0.001, 2, "0.00"},
		{17, 0, "17"},
	} {
		if got := string(Fixed(buf, c.v, c.dec)); got != c.want {
			t.Fatalf("Fixed(%v, %d) = %q, want %q", c.v, c.dec, got, c.want)
		}
	}
}
