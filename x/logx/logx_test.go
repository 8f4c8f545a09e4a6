package logx

import (
	"bytes"
	"errors"
	"testing"
)

type named struct{}

func (named) String() string { return "named" }

func TestPrintlnFormatsFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	l := New("ranger")
	l.Println("measured", "echo_us", uint32(1176), "distance_mm", float32(199.92), "ok", true)
	l.Println("kinds", "i", -3, "s", named{}, "bare")
	l.Error("read failed", errors.New("timeout"), "n", int64(2))

	want := "[ranger] measured echo_us=1176 distance_mm=199.92 ok=true\n" +
		"[ranger] kinds i=-3 s=named bare\n" +
		"[ranger] read failed err=timeout n=2\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestNilOutputDiscards(t *testing.T) {
	SetOutput(nil)
	New("x").Println("dropped") // must not panic
}
