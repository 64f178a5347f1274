// File: format.go
// Title: Format Strings
// Description: Matching and rendering of printf-style templates. A
//              template is followed by one phrase per specifier:
//              %v variable value, %e expression, %i iterator listing,
//              %n number literal. %% prints a percent sign.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package grammar

import (
	"fmt"
	"strings"

	mdwexpr "github.com/msto63/sccalc/foundation/calc/expr"
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// specifiers returns the argument specifiers of template in order.
func specifiers(template string) ([]byte, error) {
	var specs []byte
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 >= len(template) {
			return nil, fmt.Errorf("unknown format specifier '%%'")
		}
		i++
		switch c := template[i]; c {
		case '%':
		case 'v', 'e', 'i', 'n':
			specs = append(specs, c)
		default:
			return nil, fmt.Errorf("unknown format specifier '%%%c'", c)
		}
	}
	return specs, nil
}

// matchFormat yields the template as text followed by one value per
// specifier: %v a number, %e the expression text, %i the listing text and
// %n a number.
func matchFormat(phrases []string, env Env) MatchResult {
	template := phrases[0]
	specs, err := specifiers(template)
	if err != nil {
		return failure(err.Error())
	}

	values := []mdwexpr.Scalar{mdwexpr.TextScalar(template)}
	for i, spec := range specs {
		if 1+i >= len(phrases) {
			return failure(fmt.Sprintf("format specifier '%%%c' requires an argument", spec))
		}
		var r MatchResult
		switch spec {
		case 'v':
			r = matchVariable(phrases[1+i], In, true, env)
		case 'e':
			r = matchExpression(phrases[1+i], env)
		case 'i':
			r = matchIterator(phrases[1+i], In, env)
			if r.OK() {
				it, _ := env.Iterator(phrases[1+i])
				r.Values = []mdwexpr.Scalar{mdwexpr.TextScalar(it.String())}
			}
		case 'n':
			r = matchLiteralNumber(phrases[1+i])
		}
		if !r.OK() {
			return failure(r.Errors...)
		}
		values = append(values, r.Values...)
	}
	return success(values, []string{TagFormat}, 1+len(specs))
}

// Format renders the values of a FormatString match. evaluate is called
// for every %e argument.
func Format(values []mdwexpr.Scalar, evaluate func(expression string) (mdwmathx.Decimal, error)) (string, error) {
	if len(values) == 0 || values[0].Kind != mdwexpr.ScalarText {
		return "", fmt.Errorf("format string missing")
	}
	template := values[0].Text
	args := values[1:]

	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) {
			b.WriteByte(c)
			continue
		}
		i++
		if template[i] == '%' {
			b.WriteByte('%')
			continue
		}
		if len(args) == 0 {
			return "", fmt.Errorf("format specifier '%%%c' requires an argument", template[i])
		}
		arg := args[0]
		args = args[1:]

		switch template[i] {
		case 'e':
			value, err := evaluate(arg.Text)
			if err != nil {
				return "", err
			}
			b.WriteString(value.String())
		default:
			b.WriteString(arg.String())
		}
	}
	return b.String(), nil
}
