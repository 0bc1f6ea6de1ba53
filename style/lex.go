package style

import (
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// call is a CSS functional notation such as scale(2, 3) or rgb(0 0 0 / 50%).
type call struct {
	name string
	args []string
}

// calls lexes a value made of functional notations. Tokens outside of a
// function are ignored; an unterminated function is still returned with the
// arguments collected so far.
func calls(value string) []call {
	var (
		out     []call
		current *call
	)
	l := css.NewLexer(parse.NewInputString(value))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if current != nil {
				out = append(out, *current)
			}
			return out
		case css.FunctionToken:
			if current != nil {
				out = append(out, *current)
			}
			current = &call{name: strings.ToLower(strings.TrimSuffix(string(data), "("))}
		case css.RightParenthesisToken:
			if current != nil {
				out = append(out, *current)
				current = nil
			}
		case css.NumberToken, css.PercentageToken, css.DimensionToken, css.IdentToken:
			if current != nil {
				current.args = append(current.args, string(data))
			}
		}
	}
}

// dimension splits a CSS dimension such as "10px" or "45deg" into its number
// and lower-cased unit.
func dimension(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			end = i + 1
			continue
		}
		break
	}
	if end == 0 {
		return 0, "", false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, "", false
	}
	return f, strings.ToLower(s[end:]), true
}
