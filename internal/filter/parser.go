package filter

import (
	"fmt"
	"regexp"

	"github.com/cybergodev/jsonpath/internal/jvalue"
)

// Parse compiles a filter predicate body (the text between "?(" and ")",
// e.g. "@.price > 10 and @.category == 'fiction'") into an Expr tree.
// Regex literals (=~) are compiled once here, not on every evaluation.
func Parse(src string) (Expr, error) {
	p := &parser{sc: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tEOF {
		return nil, fmt.Errorf("unexpected token at %d", p.tok.pos)
	}
	return expr, nil
}

type parser struct {
	sc  *scanner
	tok token
}

func (p *parser) advance() error {
	t, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &orNode{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &andNode{left, right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.tok.kind == tNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &notNode{inner}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	if p.tok.kind == tLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tRParen {
			return nil, fmt.Errorf("expected ')' at %d", p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	}

	lhs, lhsIsPath, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	op, hasOp, err := p.parseCompareOp()
	if err != nil {
		return nil, err
	}
	if !hasOp {
		sp, ok := lhs.(*subPath)
		if !ok {
			return nil, fmt.Errorf("expected a comparison or a sub-path predicate at %d", p.tok.pos)
		}
		return &existsNode{sp}, nil
	}
	_ = lhsIsPath

	var re *regexp.Regexp
	var rhs atom
	if op == opMatch {
		if p.tok.kind != tRegex {
			return nil, fmt.Errorf("expected a regex literal after '=~' at %d", p.tok.pos)
		}
		pattern, flags := splitRegexToken(p.tok.text)
		goPattern := pattern
		if flags != "" {
			goPattern = "(?" + flags + ")" + pattern
		}
		re, err = regexp.Compile(goPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex at %d: %w", p.tok.pos, err)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		rhs, err = p.parseAtomOrArray()
		if err != nil {
			return nil, err
		}
	}

	return &compareNode{lhs: lhs, rhs: rhs, op: op, re: re}, nil
}

func splitRegexToken(text string) (pattern, flags string) {
	for i := 0; i < len(text); i++ {
		if text[i] == 0 {
			return text[:i], text[i+1:]
		}
	}
	return text, ""
}

func (p *parser) parseCompareOp() (compareOp, bool, error) {
	switch p.tok.kind {
	case tEq:
		return opEq, true, p.advance()
	case tNe:
		return opNe, true, p.advance()
	case tLt:
		return opLt, true, p.advance()
	case tLe:
		return opLe, true, p.advance()
	case tGt:
		return opGt, true, p.advance()
	case tGe:
		return opGe, true, p.advance()
	case tMatch:
		return opMatch, true, p.advance()
	case tIn:
		return opIn, true, p.advance()
	case tNot:
		save := *p.sc
		saveTok := p.tok
		if err := p.advance(); err != nil {
			return 0, false, err
		}
		if p.tok.kind == tIn {
			return opNotIn, true, p.advance()
		}
		*p.sc = save
		p.tok = saveTok
		return 0, false, nil
	}
	return 0, false, nil
}

func (p *parser) parseAtomOrArray() (atom, error) {
	if p.tok.kind == tLBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var items []atom
		for p.tok.kind != tRBracket {
			it, _, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			items = append(items, it)
			if p.tok.kind == tComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if p.tok.kind != tRBracket {
			return nil, fmt.Errorf("expected ']' at %d", p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return arrayAtom{items: items}, nil
	}
	a, _, err := p.parseAtom()
	return a, err
}

// parseAtom parses a literal or a @/$ sub-path, returning whether it was a
// sub-path (needed by the caller to decide whether a bare atom can stand
// alone as an existence predicate).
func (p *parser) parseAtom() (atom, bool, error) {
	switch p.tok.kind {
	case tAt:
		sp, err := p.parseSubPath(false)
		return sp, true, err
	case tDollar:
		sp, err := p.parseSubPath(true)
		return sp, true, err
	case tNumber:
		v := jvalue.Float(p.tok.num)
		if p.tok.num == float64(int64(p.tok.num)) {
			v = jvalue.Int(int64(p.tok.num))
		}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return literalAtom{v}, false, nil
	case tString:
		v := jvalue.String(p.tok.text)
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return literalAtom{v}, false, nil
	case tIdent:
		var v jvalue.Value
		switch p.tok.text {
		case "true":
			v = jvalue.Bool(true)
		case "false":
			v = jvalue.Bool(false)
		case "null":
			v = jvalue.Null()
		default:
			return nil, false, fmt.Errorf("unexpected identifier %q at %d", p.tok.text, p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		return literalAtom{v}, false, nil
	}
	return nil, false, fmt.Errorf("unexpected token at %d", p.tok.pos)
}

// parseSubPath parses the steps following @ or $ up to the next operator,
// rejecting wildcard/descent/filter/extract/sort sub-steps: the engine
// conservatively treats those as invalid inside a filter predicate.
func (p *parser) parseSubPath(fromRoot bool) (*subPath, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	sp := &subPath{fromRoot: fromRoot}
	for {
		switch p.tok.kind {
		case tDot:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind != tIdent {
				return nil, fmt.Errorf("expected a name after '.' at %d", p.tok.pos)
			}
			if p.tok.text == "*" {
				return nil, fmt.Errorf("wildcard is not allowed inside a filter sub-path at %d", p.tok.pos)
			}
			sp.steps = append(sp.steps, subPathStep{kind: stepChild, key: p.tok.text})
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tLBracket:
			if err := p.advance(); err != nil {
				return nil, err
			}
			step, err := p.parseSubPathBracket()
			if err != nil {
				return nil, err
			}
			sp.steps = append(sp.steps, step)
			if p.tok.kind != tRBracket {
				return nil, fmt.Errorf("expected ']' at %d", p.tok.pos)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return sp, nil
		}
	}
}

func (p *parser) parseSubPathBracket() (subPathStep, error) {
	if p.tok.kind == tString {
		key := p.tok.text
		if err := p.advance(); err != nil {
			return subPathStep{}, err
		}
		return subPathStep{kind: stepChild, key: key}, nil
	}
	if p.tok.kind == tIdent && p.tok.text == "*" {
		return subPathStep{}, fmt.Errorf("wildcard is not allowed inside a filter sub-path at %d", p.tok.pos)
	}

	var nums []int
	var hasColon bool
	parts := [3]*int{}
	partIdx := 0

	for p.tok.kind != tRBracket {
		switch p.tok.kind {
		case tNumber:
			v := int(p.tok.num)
			if err := p.advance(); err != nil {
				return subPathStep{}, err
			}
			nums = append(nums, v)
			vv := v
			if partIdx < 3 {
				parts[partIdx] = &vv
			}
		case tColon:
			hasColon = true
			partIdx++
			if err := p.advance(); err != nil {
				return subPathStep{}, err
			}
			continue
		case tComma:
			if err := p.advance(); err != nil {
				return subPathStep{}, err
			}
			continue
		default:
			return subPathStep{}, fmt.Errorf("unexpected token in sub-path index at %d", p.tok.pos)
		}
	}

	if hasColon {
		return subPathStep{kind: stepSlice, start: parts[0], end: parts[1], strd: parts[2]}, nil
	}
	if len(nums) == 1 {
		return subPathStep{kind: stepIndex, index: nums[0]}, nil
	}
	if len(nums) > 1 {
		return subPathStep{kind: stepIndexList, indices: nums}, nil
	}
	return subPathStep{}, fmt.Errorf("empty bracket in sub-path")
}
