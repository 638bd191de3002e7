package skills

import (
	"context"
	log "log/slog"
	"strings"

	"maze/internal/nlu"
	"maze/pkg/calc"
)

// MathTriggers gate the arithmetic handler.
var MathTriggers = []string{
	"calculate", "what is", "what's", "how much", "plus", "minus", "times",
	"divided", "multiply", "add", "subtract", "solve", " x ",
}

var mathFillers = []string{"calculate", "what is", "what's", "how much is", "solve", "equals"}

// spokenOperators is applied in order; entries carry their surrounding
// spaces so they only replace whole words.
var spokenOperators = []struct{ word, op string }{
	{" plus ", "+"},
	{" add ", "+"},
	{" added to ", "+"},
	{" minus ", "-"},
	{" subtract ", "-"},
	{" subtracted from ", "-"},
	{" times ", "*"},
	{" multiply ", "*"},
	{" multiplied by ", "*"},
	{" into ", "*"},
	{" x ", "*"},
	{" × ", "*"},
	{" X ", "*"},
	{" divided by ", "/"},
	{" divide ", "/"},
	{" over ", "/"},
	{" power ", "**"},
	{" to the power of ", "**"},
	{" square ", "**2"},
	{" mod ", "%"},
	{" modulo ", "%"},
	{" remainder ", "%"},
}

const calcFailed = "I couldn't calculate that. Try saying it like 'calculate 25 times 4'."

// Math evaluates a spoken arithmetic expression. Commands without any
// digit are declined.
func (k *Kit) Math(_ context.Context, cmd string) (string, bool) {
	expr, ok := MathExpression(cmd)
	if !ok {
		return "", false
	}

	v, err := calc.Eval(expr)
	if err != nil {
		log.Debug("Calculation failed", "expr", expr, "err", err)
		return calcFailed, true
	}
	return "The answer is " + calc.Format(v) + ".", true
}

// MathExpression rewrites cmd into symbolic arithmetic and drops every
// other character. ok is false when no digit is left.
func MathExpression(cmd string) (expr string, ok bool) {
	for _, f := range mathFillers {
		cmd = strings.ReplaceAll(cmd, f, " ")
	}
	for _, so := range spokenOperators {
		cmd = strings.ReplaceAll(cmd, so.word, so.op)
	}
	cmd = strings.NewReplacer("x", "*", "×", "*", "X", "*").Replace(cmd)

	var b strings.Builder
	for _, r := range cmd {
		if strings.ContainsRune("0123456789.+-*/() %", r) {
			b.WriteRune(r)
		}
	}
	expr = strings.TrimSpace(b.String())

	return expr, strings.ContainsAny(expr, "0123456789")
}

// IsMath reports whether cmd carries an arithmetic trigger.
func IsMath(cmd string) bool { return nlu.ContainsAny(cmd, MathTriggers...) }
