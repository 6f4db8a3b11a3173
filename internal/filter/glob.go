package filter

import (
	"regexp"
	"strings"
)

// CompileWildcard turns a shell-glob pattern into a case-insensitive regular
// expression that matches anywhere inside the text.
//
//   - `*` matches any run of characters
//   - `?` matches a single character
//   - `[...]` is a character class, `[!...]` or `[^...]` its negation
//   - `\` makes the next character literal
//
// A `[` without a closing `]` is taken literally.
func CompileWildcard(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(wildcardToRegexp(pattern))
}

func wildcardToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("(?is)")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 < len(runes) {
				i++
				b.WriteString(regexp.QuoteMeta(string(runes[i])))
			} else {
				b.WriteString(`\\`)
			}
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(translateClass(runes[i+1 : end]))
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// classEnd returns the index of the `]` closing the class opened at start,
// or -1. A `]` right after the opening (or after the negation mark) is a
// member of the class.
func classEnd(runes []rune, start int) int {
	j := start + 1
	if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for ; j < len(runes); j++ {
		if runes[j] == ']' {
			return j
		}
	}
	return -1
}

func translateClass(body []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	if len(body) > 0 && (body[0] == '!' || body[0] == '^') {
		b.WriteByte('^')
		body = body[1:]
	}
	for _, r := range body {
		switch r {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte(']')
	return b.String()
}
