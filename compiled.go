package jsonpath

import (
	"fmt"

	"github.com/cybergodev/jsonpath/internal/evaluator"
	"github.com/cybergodev/jsonpath/internal/lexer"
	"github.com/cybergodev/jsonpath/internal/segment"
)

// CompiledExpression is a parsed JSONPath expression, ready to be
// evaluated against any number of documents without re-parsing.
type CompiledExpression struct {
	source string
	steps  []segment.Step
}

// Compile parses expr into a CompiledExpression. It does not evaluate
// anything: it fails with ErrSyntax for a malformed expression, or with
// ErrInvalidExpression when expr exceeds MaxExpressionLength or compiles
// to more than MaxSegmentDepth steps.
func Compile(expr string) (*CompiledExpression, error) {
	if len(expr) > MaxExpressionLength {
		return nil, newError("compile", expr, 0, ErrInvalidExpression, "expression exceeds maximum length")
	}
	steps, err := segment.Parse(expr)
	if err != nil {
		return nil, compileError(expr, err)
	}
	if len(steps) > MaxSegmentDepth {
		return nil, newError("compile", expr, 0, ErrInvalidExpression, "expression exceeds maximum segment depth")
	}
	return &CompiledExpression{source: expr, steps: steps}, nil
}

// MustCompile is like Compile but panics on error, for expressions known
// to be valid at init time (package-level variables, constants).
func MustCompile(expr string) *CompiledExpression {
	c, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate reports whether expr parses, without evaluating it against
// any document.
func Validate(expr string) error {
	_, err := Compile(expr)
	return err
}

// String reproduces the original expression the CompiledExpression was
// compiled from.
func (c *CompiledExpression) String() string { return c.source }

// CacheSize estimates this compiled expression's footprint for the
// engine's cache accounting.
func (c *CompiledExpression) CacheSize() int {
	return len(c.source) + len(c.steps)*64
}

func (c *CompiledExpression) evaluate(doc Value) ([]evaluator.Match, error) {
	matches, err := evaluator.Evaluate(c.steps, doc)
	if err != nil {
		return nil, &PathError{Op: "search", Expr: c.source, Message: err.Error(), Err: wrapEvalErr(err)}
	}
	return matches, nil
}

func wrapEvalErr(err error) error {
	if _, ok := err.(*evaluator.TypeError); ok {
		return ErrType
	}
	return ErrValue
}

func compileError(expr string, err error) *PathError {
	if lexErr, ok := err.(*lexer.Error); ok {
		return &PathError{Op: "compile", Expr: expr, Offset: lexErr.Offset, Message: lexErr.Message, Err: ErrSyntax}
	}
	return &PathError{Op: "compile", Expr: expr, Message: fmt.Sprintf("%v", err), Err: ErrInvalidExpression}
}
