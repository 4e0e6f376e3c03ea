package lang

import (
	"strconv"
	"strings"
)

// NumbersToDigits rewrites spoken number words in a sentence as digits
// using the pack's number table: "twenty five minutes" becomes
// "25 minutes". Tens followed by a units word are combined; hyphenated
// compounds ("twenty-five") are handled the same way. Words outside the
// table pass through untouched.
func NumbersToDigits(s string, p Pack) string {
	words := p.NumberWords()
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))

	for i := 0; i < len(fields); i++ {
		tok := strings.ToLower(fields[i])

		if v, ok := hyphenValue(tok, words); ok {
			out = append(out, strconv.Itoa(v))
			continue
		}

		v, ok := words[tok]
		if !ok {
			out = append(out, fields[i])
			continue
		}
		// "twenty five" -> 25
		if isTens(v) && i+1 < len(fields) {
			if u, uok := words[strings.ToLower(fields[i+1])]; uok && u >= 1 && u <= 9 {
				out = append(out, strconv.Itoa(v+u))
				i++
				continue
			}
		}
		out = append(out, strconv.Itoa(v))
	}
	return strings.Join(out, " ")
}

func hyphenValue(tok string, words map[string]int) (int, bool) {
	parts := strings.SplitN(tok, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	tens, ok := words[parts[0]]
	if !ok || !isTens(tens) {
		return 0, false
	}
	unit, ok := words[parts[1]]
	if !ok || unit < 1 || unit > 9 {
		return 0, false
	}
	return tens + unit, true
}

func isTens(v int) bool { return v >= 20 && v <= 90 && v%10 == 0 }
