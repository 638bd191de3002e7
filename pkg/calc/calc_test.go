package calc

import (
	"errors"
	"testing"
)

func TestEval(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"25 * 4", 100},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"2 ** 3 ** 2", 512},
		{"-2 ** 2", -4},
		{"2 ** -1", 0.5},
		{"7 % 3", 1},
		{"-7 % 3", 2},
		{"7 % -3", -2},
		{" 1.5 + .5 ", 2},
		{"--3", 3},
		{"2  **  3", 8},
	}
	for _, tc := range cases {
		got, err := Eval(tc.expr)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tc.expr, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q)=%v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	cases := map[string]error{
		"":          ErrEmpty,
		"   ":       ErrEmpty,
		"10 / 0":    ErrDivisionByZero,
		"5 % 0":     ErrDivisionByZero,
		"0 ** -1":   ErrDivisionByZero,
		"1 2":       ErrSyntax,
		"(1 + 2":    ErrSyntax,
		"1 +":       ErrSyntax,
		"* 3":       ErrSyntax,
		"1.2.3":     ErrSyntax,
		"2 * * 3":   ErrSyntax,
		"abs(1)":    ErrSyntax,
		"10 ** 400": ErrOverflow,
	}
	for expr, want := range cases {
		_, err := Eval(expr)
		if !errors.Is(err, want) {
			t.Fatalf("Eval(%q) err=%v, want %v", expr, err, want)
		}
	}
}

func TestEvalDeepNesting(t *testing.T) {
	expr := ""
	for i := 0; i < maxDepth+10; i++ {
		expr += "("
	}
	expr += "1"
	if _, err := Eval(expr); !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected syntax error for deep nesting, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	cases := map[float64]string{
		100:     "100",
		2.5:     "2.5",
		-4:      "-4",
		1.0 / 3: "0.3333333333333333",
		1e20:    "100000000000000000000",
	}
	for v, want := range cases {
		if got := Format(v); got != want {
			t.Fatalf("Format(%v)=%q, want %q", v, got, want)
		}
	}
}
