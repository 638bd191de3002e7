// Package calc evaluates plain arithmetic expressions.
//
// Only numbers, + - * / % ** (power), unary signs and parentheses are
// understood. Nothing else is ever interpreted, so the input may come
// straight from user text.
package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrEmpty          = errors.New("empty expression")
	ErrSyntax         = errors.New("syntax error")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("result out of range")
)

// maxDepth bounds parenthesis and sign nesting.
const maxDepth = 256

type tokKind uint

const (
	tokNum tokKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	op   string
	num  float64
	pos  int
}

// Eval parses and evaluates expr. Division and modulo follow floating
// point semantics with the sign rules of floor division for %.
func Eval(expr string) (float64, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(toks) == 0 {
		return 0, ErrEmpty
	}

	p := &parser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.i != len(p.toks) {
		return 0, fmt.Errorf("%w: unexpected token at %d", ErrSyntax, p.toks[p.i].pos)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrOverflow
	}

	return v, nil
}

// Format renders v the way a person would say it: integral values have no
// fractional part.
func Format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e18 {
		return strconv.FormatInt(int64(v), 10)
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func tokenize(s string) ([]token, error) {
	var toks []token

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
				i++
			}
			n, err := strconv.ParseFloat(s[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, s[start:i])
			}
			toks = append(toks, token{kind: tokNum, num: n, pos: start})
		case c == '*' && i+1 < len(s) && s[i+1] == '*':
			toks = append(toks, token{kind: tokOp, op: "**", pos: i})
			i += 2
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%':
			toks = append(toks, token{kind: tokOp, op: string(c), pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, i)
		}
	}

	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type parser struct {
	toks  []token
	i     int
	depth int
}

func (p *parser) peekOp(ops ...string) (string, bool) {
	if p.i >= len(p.toks) || p.toks[p.i].kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if p.toks[p.i].op == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return fmt.Errorf("%w: nesting too deep", ErrSyntax)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// expr := term (('+' | '-') term)*
func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("+", "-")
		if !ok {
			return left, nil
		}
		p.i++
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
}

// term := unary (('*' | '/' | '%') unary)*
func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("*", "/", "%")
		if !ok {
			return left, nil
		}
		p.i++
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		switch op {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left = floorMod(left, right)
		}
	}
}

// unary := ('+' | '-') unary | power
func (p *parser) unary() (float64, error) {
	op, ok := p.peekOp("+", "-")
	if !ok {
		return p.power()
	}
	if err := p.enter(); err != nil {
		return 0, err
	}
	defer p.leave()

	p.i++
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	if op == "-" {
		return -v, nil
	}
	return v, nil
}

// power := atom ('**' unary)?   (right associative, binds tighter than a
// sign on its left: -2**2 == -4)
func (p *parser) power() (float64, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}
	if _, ok := p.peekOp("**"); !ok {
		return base, nil
	}
	p.i++
	exp, err := p.unary()
	if err != nil {
		return 0, err
	}
	if base == 0 && exp < 0 {
		return 0, ErrDivisionByZero
	}
	v := math.Pow(base, exp)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrOverflow
	}
	return v, nil
}

// atom := number | '(' expr ')'
func (p *parser) atom() (float64, error) {
	if p.i >= len(p.toks) {
		return 0, fmt.Errorf("%w: unexpected end", ErrSyntax)
	}
	t := p.toks[p.i]
	switch t.kind {
	case tokNum:
		p.i++
		return t.num, nil
	case tokLParen:
		if err := p.enter(); err != nil {
			return 0, err
		}
		defer p.leave()

		p.i++
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.i >= len(p.toks) || p.toks[p.i].kind != tokRParen {
			return 0, fmt.Errorf("%w: missing ')'", ErrSyntax)
		}
		p.i++
		return v, nil
	default:
		return 0, fmt.Errorf("%w: unexpected token at %d", ErrSyntax, t.pos)
	}
}

// floorMod matches the sign of the divisor.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}
