// Package lexer splits a JSONPath expression into raw segments: the root
// marker, each `.name`/`..name` step, and each bracketed `[...]`, `/(...)`
// or `(...)` group, each tagged with its byte offset in the original
// expression for SyntaxError reporting. It does not interpret segment
// contents — that is internal/segment's job.
package lexer

import "fmt"

// Kind classifies a raw segment before internal/segment interprets it
// further.
type Kind int

const (
	KindRoot    Kind = iota // "$"
	KindDot                 // ".name" or ".*"
	KindDescent             // ".." or "..name"
	KindBracket             // "[...]" — contents still unparsed
	KindSort                // "/(...)"
	KindExtract             // "(...)"
)

// Segment is one lexical unit of an expression, with its contents
// (bracket/paren delimiters stripped) and the byte offset of the segment
// start in the original expression.
type Segment struct {
	Kind   Kind
	Text   string
	Offset int
}

// Error reports a lexical problem at a byte offset.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonpath: syntax error at offset %d: %s", e.Offset, e.Message)
}

// Scan splits expr into raw segments. expr must begin with "$".
func Scan(expr string) ([]Segment, error) {
	if len(expr) == 0 || expr[0] != '$' {
		return nil, &Error{Offset: 0, Message: "expression must start with '$'"}
	}

	segs := []Segment{{Kind: KindRoot, Text: "$", Offset: 0}}
	i := 1
	n := len(expr)

	for i < n {
		switch {
		case expr[i] == '.':
			start := i
			if i+1 < n && expr[i+1] == '.' {
				i += 2
				nameStart := i
				if i < n && expr[i] == '*' {
					// "..*" is plain recursive descent immediately
					// followed by a wildcard step, not a fused
					// descent-key shorthand — emit it as two segments so
					// internal/segment applies them normally in sequence.
					i++
					segs = append(segs, Segment{Kind: KindDescent, Text: "", Offset: start})
					segs = append(segs, Segment{Kind: KindDot, Text: "*", Offset: nameStart})
					continue
				}
				for i < n && isNameChar(expr[i]) {
					i++
				}
				segs = append(segs, Segment{Kind: KindDescent, Text: expr[nameStart:i], Offset: start})
				continue
			}
			i++
			nameStart := i
			if i < n && expr[i] == '*' {
				i++
				segs = append(segs, Segment{Kind: KindDot, Text: "*", Offset: start})
				continue
			}
			if i < n && (expr[i] == '\'' || expr[i] == '"') {
				end, err := skipQuoted(expr, i, expr[i])
				if err != nil {
					return nil, err
				}
				// Text keeps the surrounding quotes; internal/segment
				// unquotes it the same way it does a bracketed key, so
				// `$.'a.b c'` and `$['a.b c']` land on the same Step.
				segs = append(segs, Segment{Kind: KindDot, Text: expr[nameStart:end], Offset: start})
				i = end
				continue
			}
			for i < n && isNameChar(expr[i]) {
				i++
			}
			if i == nameStart {
				return nil, &Error{Offset: start, Message: "expected a name after '.'"}
			}
			segs = append(segs, Segment{Kind: KindDot, Text: expr[nameStart:i], Offset: start})

		case expr[i] == '[':
			start := i
			end, err := matchBalanced(expr, i, '[', ']')
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Kind: KindBracket, Text: expr[i+1 : end], Offset: start})
			i = end + 1

		case expr[i] == '/' && i+1 < n && expr[i+1] == '(':
			start := i
			end, err := matchBalanced(expr, i+1, '(', ')')
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Kind: KindSort, Text: expr[i+2 : end], Offset: start})
			i = end + 1

		case expr[i] == '(':
			start := i
			end, err := matchBalanced(expr, i, '(', ')')
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Kind: KindExtract, Text: expr[i+1 : end], Offset: start})
			i = end + 1

		default:
			return nil, &Error{Offset: i, Message: fmt.Sprintf("unexpected character %q", expr[i])}
		}
	}

	return segs, nil
}

func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// matchBalanced returns the index of the closing delimiter matching the
// opening delimiter at position open, tracking nested (), [] and quoted
// ('...', "...", /.../) spans so a bracket or paren inside a string or
// regex literal never confuses the balance.
func matchBalanced(s string, open int, openCh, closeCh byte) (int, error) {
	depth := 0
	i := open
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			j, err := skipQuoted(s, i, c)
			if err != nil {
				return 0, err
			}
			i = j
			continue
		case c == '/' && i > open:
			j, ok := skipRegex(s, i)
			if ok {
				i = j
				continue
			}
			i++
		case c == openCh:
			depth++
			i++
		case c == closeCh:
			depth--
			i++
			if depth == 0 {
				return i - 1, nil
			}
		default:
			i++
		}
	}
	return 0, &Error{Offset: open, Message: "unbalanced delimiter"}
}

func skipQuoted(s string, i int, quote byte) (int, error) {
	start := i
	i++
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			i += 2
			continue
		}
		if s[i] == quote {
			return i + 1, nil
		}
		i++
	}
	return 0, &Error{Offset: start, Message: "unterminated quoted string"}
}

// skipRegex attempts to skip a /pattern/flags literal starting at s[i].
// It only treats '/' as a regex delimiter when a matching closing '/'
// exists on the same bracket group; otherwise it's not a regex literal
// and the caller should treat '/' as an ordinary character.
func skipRegex(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) {
		if s[j] == '\\' && j+1 < len(s) {
			j += 2
			continue
		}
		if s[j] == '/' {
			j++
			for j < len(s) && isNameChar(s[j]) {
				j++
			}
			return j, true
		}
		if s[j] == ')' || s[j] == ']' {
			return 0, false
		}
		j++
	}
	return 0, false
}
