// Package calc evaluates plain arithmetic: numbers, + - * /, parentheses and
// unary signs. Nothing else is accepted.
//
// Grammar:
//
//	expr   = term { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = ("+" | "-") factor | number | "(" expr ")"
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrSyntax         = errors.New("invalid expression")
	ErrDivisionByZero = errors.New("division by zero")
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

type parser struct {
	src   string
	pos   int
	depth int
}

// Eval parses and evaluates expr.
func Eval(expr string) (float64, error) {
	p := &parser{src: expr}

	p.skipSpace()
	if p.pos == len(p.src) {
		return 0, fmt.Errorf("%w: empty", ErrSyntax)
	}

	v, err := p.expr()
	if err != nil {
		return 0, err
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return 0, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, p.src[p.pos], p.pos+1)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: result out of range", ErrSyntax)
	}
	return v, nil
}

// Format renders v without a trailing ".0" for whole numbers.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return left, nil
		}
		op := p.src[p.pos]
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++

		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.factor()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return left, nil
		}
		op := p.src[p.pos]
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++

		right, err := p.factor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		left /= right
	}
}

func (p *parser) factor() (float64, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return 0, fmt.Errorf("%w: nested too deeply", ErrSyntax)
	}

	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, fmt.Errorf("%w: unexpected end", ErrSyntax)
	}

	switch c := p.src[p.pos]; {
	case c == '-' || c == '+':
		p.pos++
		v, err := p.factor()
		if err != nil {
			return 0, err
		}
		if c == '-' {
			return -v, nil
		}
		return v, nil

	case c == '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return 0, fmt.Errorf("%w: missing ')'", ErrSyntax)
		}
		p.pos++
		return v, nil

	case isDigit(c) || c == '.':
		return p.number()

	default:
		return 0, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, p.pos+1)
	}
}

func (p *parser) number() (float64, error) {
	start := p.pos
	dots := 0
	for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		if p.src[p.pos] == '.' {
			dots++
		}
		p.pos++
	}

	lit := p.src[start:p.pos]
	if dots > 1 || lit == "." {
		return 0, fmt.Errorf("%w: bad number %q", ErrSyntax, lit)
	}

	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrSyntax, lit)
	}
	return v, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
