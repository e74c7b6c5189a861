package jsonpath

import (
	"strconv"
	"strings"

	"github.com/cybergodev/jsonpath/internal/navigate"
)

// FormatPath renders a tracked path as the engine's canonical path
// string: always bracket-quoted, "$['key']" or "$[0]", never the
// dot-identifier shorthand some JSONPath dialects allow. This is a
// deliberate simplification over the shorthand-when-possible heuristic
// some implementations use.
func FormatPath(path []navigate.PathElem) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, e := range path {
		if e.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(e.Index))
			b.WriteByte(']')
			continue
		}
		b.WriteString("['")
		b.WriteString(escapeKey(e.Key))
		b.WriteString("']")
	}
	return b.String()
}

func escapeKey(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '\\' || c == '\'' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
