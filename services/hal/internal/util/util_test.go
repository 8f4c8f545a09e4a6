package util

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecodeJSON(t *testing.T) {
	type P struct {
		Pin    int    `json:"pin"`
		Edge   string `json:"edge"`
		Invert bool   `json:"invert"`
	}

	for name, in := range map[string]any{
		"bytes":  []byte(`{"pin":13,"edge":"falling","invert":true}`),
		"string": `{"pin":13,"edge":"falling","invert":true}`,
		"raw":    json.RawMessage(`{"pin":13,"edge":"falling","invert":true}`),
		"map":    map[string]any{"pin": float64(13), "edge": "falling", "invert": true},
	} {
		var p P
		if err := DecodeJSON(in, &p); err != nil {
			t.Fatalf("%s: decode failed: %v", name, err)
		}
		if p.Pin != 13 || p.Edge != "falling" || !p.Invert {
			t.Fatalf("%s: unexpected result: %+v", name, p)
		}
	}
}

func TestDecodeJSONNilKeepsDefaults(t *testing.T) {
	p := struct {
		Pin int `json:"pin"`
	}{Pin: 25}
	if err := DecodeJSON(nil, &p); err != nil || p.Pin != 25 {
		t.Fatalf("nil source changed dst: %+v, %v", p, err)
	}
	if err := DecodeJSON(`{"pin":`, &p); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestResetTimer(t *testing.T) {
	tm := time.NewTimer(time.Hour)
	ResetTimer(tm, time.Millisecond)
	select {
	case <-tm.C:
	case <-time.After(50 * time.Millisecond):
		t.Fatal("timer did not fire after ResetTimer")
	}
	ResetTimer(tm, -1)
	select {
	case <-tm.C:
	case <-time.After(50 * time.Millisecond):
		t.Fatal("timer did not fire after negative ResetTimer")
	}
}
