package core

import (
	"bringup-go/errcode"
	"bringup-go/services/hal/internal/util"
)

// As asserts a payload to the concrete value type T.
// Pointers are not accepted. A nil payload is the zero value of T.
func As[T any](v any) (T, errcode.Code) {
	var zero T
	if v == nil {
		return zero, ""
	}
	t, ok := v.(T)
	if !ok {
		return zero, errcode.InvalidPayload
	}
	return t, ""
}

// DecodeParams accepts either a typed T or a JSON-shaped value (as produced
// by the config service) and returns T.
func DecodeParams[T any](v any) (T, error) {
	var out T
	if v == nil {
		return out, nil
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	if err := util.DecodeJSON(v, &out); err != nil {
		return out, errcode.Wrap(errcode.InvalidParams, "decode", err)
	}
	return out, nil
}
