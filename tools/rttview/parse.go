package rttview

import (
	"strconv"
	"strings"
)

// Line is one parsed log line: "[tag] msg k=v k=v".
type Line struct {
	Tag    string
	Msg    string
	Fields map[string]string
}

// ParseLine splits a tagged line. The message runs up to the first k=v
// token; bare tokens after the fields are ignored.
func ParseLine(s string) (Line, bool) {
	s = strings.TrimRight(s, "\r\n")
	if !strings.HasPrefix(s, "[") {
		return Line{}, false
	}
	end := strings.IndexByte(s, ']')
	if end <= 1 {
		return Line{}, false
	}
	l := Line{Tag: s[1:end], Fields: map[string]string{}}

	var msg []string
	for _, tok := range strings.Fields(s[end+1:]) {
		k, v, ok := strings.Cut(tok, "=")
		if !ok || k == "" {
			if len(l.Fields) == 0 {
				msg = append(msg, tok)
			}
			continue
		}
		l.Fields[k] = v
	}
	l.Msg = strings.Join(msg, " ")
	return l, true
}

// Float returns a numeric field.
func (l Line) Float(key string) (float64, bool) {
	v, ok := l.Fields[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}
