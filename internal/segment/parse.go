package segment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cybergodev/jsonpath/internal/filter"
	"github.com/cybergodev/jsonpath/internal/lexer"
)

// Parse tokenizes and classifies expr into a Step sequence. A trailing
// ".." (recursive descent with nothing following it) is rejected at
// compile time, per the engine's resolution of that otherwise-ambiguous
// case.
func Parse(expr string) ([]Step, error) {
	raw, err := lexer.Scan(expr)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(raw))
	for i, seg := range raw {
		switch seg.Kind {
		case lexer.KindRoot:
			steps = append(steps, Step{Kind: KindRoot, Offset: seg.Offset})

		case lexer.KindDot:
			if seg.Text == "*" {
				steps = append(steps, Step{Kind: KindWildcard, Offset: seg.Offset})
				continue
			}
			key := seg.Text
			if isQuoted(key) {
				key = unquote(key)
			}
			steps = append(steps, Step{Kind: KindChild, Key: key, Offset: seg.Offset})

		case lexer.KindDescent:
			if seg.Text == "" && i == len(raw)-1 {
				return nil, &lexer.Error{Offset: seg.Offset, Message: "expression cannot end with '..'"}
			}
			steps = append(steps, Step{Kind: KindDescent, DescentKey: seg.Text, Offset: seg.Offset})

		case lexer.KindBracket:
			step, err := parseBracket(seg.Text, seg.Offset)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)

		case lexer.KindSort:
			step, err := parseSort(seg.Text, seg.Offset)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)

		case lexer.KindExtract:
			step, err := parseExtract(seg.Text, seg.Offset)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		}
	}
	return steps, nil
}

func parseBracket(body string, offset int) (Step, error) {
	body = strings.TrimSpace(body)

	if body == "*" {
		return Step{Kind: KindWildcard, Offset: offset}, nil
	}

	if strings.HasPrefix(body, "?(") && strings.HasSuffix(body, ")") {
		inner := body[2 : len(body)-1]
		expr, err := filter.Parse(inner)
		if err != nil {
			return Step{}, &lexer.Error{Offset: offset, Message: fmt.Sprintf("invalid filter expression: %v", err)}
		}
		return Step{Kind: KindFilter, Filter: expr, Offset: offset}, nil
	}

	if strings.HasPrefix(body, "/(") && strings.HasSuffix(body, ")") {
		return parseSort(body[2:len(body)-1], offset)
	}

	parts := splitTopLevel(body, ',')

	// A colon only introduces a slice when it's unquoted — a single quoted
	// key containing a literal ':' (e.g. ['a:b']) must fall through to the
	// key-classification below instead.
	if len(parts) == 1 && !isQuoted(parts[0]) && strings.Contains(parts[0], ":") {
		return parseSlice(parts[0], offset)
	}

	allQuoted := true
	allInt := true
	for _, p := range parts {
		if isQuoted(p) {
			allInt = false
		} else if _, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			allQuoted = false
		} else {
			allQuoted, allInt = false, false
		}
	}

	switch {
	case allQuoted:
		keys := make([]string, len(parts))
		for i, p := range parts {
			keys[i] = unquote(p)
		}
		if len(keys) == 1 {
			return Step{Kind: KindChild, Key: keys[0], Offset: offset}, nil
		}
		return Step{Kind: KindKeyList, Keys: keys, Offset: offset}, nil
	case allInt:
		indices := make([]int, len(parts))
		for i, p := range parts {
			n, _ := strconv.Atoi(strings.TrimSpace(p))
			indices[i] = n
		}
		return Step{Kind: KindIndexList, Indices: indices, Offset: offset}, nil
	default:
		return Step{}, &lexer.Error{Offset: offset, Message: fmt.Sprintf("unrecognized bracket segment %q", body)}
	}
}

func parseSlice(body string, offset int) (Step, error) {
	parts := strings.Split(body, ":")
	if len(parts) > 3 {
		return Step{}, &lexer.Error{Offset: offset, Message: "slice has too many ':' separated parts"}
	}
	ptrs := make([]*int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Step{}, &lexer.Error{Offset: offset, Message: fmt.Sprintf("invalid slice bound %q", p)}
		}
		ptrs[i] = &n
	}
	return Step{Kind: KindSlice, Start: ptrs[0], End: ptrs[1], Step: ptrs[2], Offset: offset}, nil
}

func parseSort(body string, offset int) (Step, error) {
	parts := splitTopLevel(body, ',')
	keys := make([]SortKey, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		desc := false
		if strings.HasPrefix(p, "~") {
			desc = true
			p = p[1:]
		}
		p = unquote(p)
		keys = append(keys, SortKey{Key: p, Desc: desc})
	}
	if len(keys) == 0 {
		return Step{}, &lexer.Error{Offset: offset, Message: "sort step requires at least one key"}
	}
	return Step{Kind: KindSort, SortKeys: keys, Offset: offset}, nil
}

func parseExtract(body string, offset int) (Step, error) {
	parts := splitTopLevel(body, ',')
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		keys = append(keys, unquote(p))
	}
	if len(keys) == 0 {
		return Step{}, &lexer.Error{Offset: offset, Message: "extract step requires at least one field"}
	}
	return Step{Kind: KindExtract, ExtractKeys: keys, Offset: offset}, nil
}

func isQuoted(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 2 && (s[0] == '\'' && s[len(s)-1] == '\'' || s[0] == '"' && s[len(s)-1] == '"')
}

// unquote strips a matching pair of surrounding quotes and decodes the
// \\, \' and \" escapes FormatPath's escapeKey produces, so a canonical
// path round-trips back to the key it was built from.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if !isQuoted(s) {
		return s
	}
	inner := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) {
			next := inner[i+1]
			if next == '\\' || next == '\'' || next == '"' {
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitTopLevel splits s on sep, ignoring occurrences inside quoted
// strings.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var b strings.Builder
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote != 0:
			b.WriteByte(c)
			if c == inQuote && (i == 0 || s[i-1] != '\\') {
				inQuote = 0
			}
		case c == '\'' || c == '"':
			inQuote = c
			b.WriteByte(c)
		case c == sep:
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	parts = append(parts, b.String())
	return parts
}
