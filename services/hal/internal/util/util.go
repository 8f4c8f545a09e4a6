package util

import (
	"encoding/json"
	"time"
)

// ResetTimer re-arms t for d, discarding a pending fire. Negative d fires
// at once.
func ResetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(max(d, 0))
}

// DecodeJSON fills dst from raw JSON or from a JSON-shaped value such as the
// map[string]any the config service publishes. nil leaves dst untouched.
func DecodeJSON[T any](src any, dst *T) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw = b
	}
	return json.Unmarshal(raw, dst)
}
