// Package logx writes tagged debug lines to the platform console, the
// firmware's stand-in for an RTT channel. Formatting avoids fmt so it stays
// cheap on MCU builds. Lines look like:
//
//	[ranger] measured echo_us=1176 distance_mm=199.92
package logx

import (
	"io"
	"sync"

	"bringup-go/x/conv"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

var (
	mu  sync.Mutex
	out io.Writer = discard{}
)

// SetOutput replaces the console writer. nil discards.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = discard{}
	}
	out = w
	mu.Unlock()
}

// Logger prefixes every line with its tag.
type Logger struct{ tag string }

func New(tag string) Logger { return Logger{tag: tag} }

// Println writes msg followed by key=value pairs. A trailing unpaired key is
// printed bare.
func (l Logger) Println(msg string, kv ...any) {
	var stack [128]byte
	b := stack[:0]
	b = append(b, '[')
	b = append(b, l.tag...)
	b = append(b, "] "...)
	b = append(b, msg...)
	for i := 0; i < len(kv); i += 2 {
		b = append(b, ' ')
		b = appendValue(b, kv[i])
		if i+1 < len(kv) {
			b = append(b, '=')
			b = appendValue(b, kv[i+1])
		}
	}
	b = append(b, '\n')

	mu.Lock()
	_, _ = out.Write(b)
	mu.Unlock()
}

// Error logs msg with an err field.
func (l Logger) Error(msg string, err error, kv ...any) {
	l.Println(msg, append([]any{"err", err}, kv...)...)
}

func appendValue(b []byte, v any) []byte {
	var tmp [24]byte
	switch x := v.(type) {
	case nil:
		return append(b, "nil"...)
	case string:
		return append(b, x...)
	case bool:
		if x {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case int:
		return append(b, conv.Itoa(tmp[:], int64(x))...)
	case int32:
		return append(b, conv.Itoa(tmp[:], int64(x))...)
	case int64:
		return append(b, conv.Itoa(tmp[:], x)...)
	case uint8:
		return append(b, conv.Utoa(tmp[:], uint64(x))...)
	case uint16:
		return append(b, conv.Utoa(tmp[:], uint64(x))...)
	case uint32:
		return append(b, conv.Utoa(tmp[:], uint64(x))...)
	case uint64:
		return append(b, conv.Utoa(tmp[:], x)...)
	case uint:
		return append(b, conv.Utoa(tmp[:], uint64(x))...)
	case float32:
		return appendFloat(b, x)
	case float64:
		return appendFloat(b, float32(x))
	case error:
		return append(b, x.Error()...)
	case interface{ String() string }:
		return append(b, x.String()...)
	default:
		return append(b, '?')
	}
}

func appendFloat(b []byte, f float32) []byte {
	var tmp [32]byte
	return append(b, conv.Fixed(tmp[:0], f, 2)...)
}
