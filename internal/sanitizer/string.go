package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

// markupTriggers are removed case-insensitively from free text. Angle
// brackets are stripped separately, so no tag can survive. Gaps match any
// Unicode space, not only ASCII whitespace.
var markupTriggers = regexp.MustCompile(`(?i)javascript[\s\p{Z}]*:|vbscript[\s\p{Z}]*:|data[\s\p{Z}]*:[\s\p{Z}]*text/html|\bon[a-z]+[\s\p{Z}]*=`)

// Text trims s and neutralizes markup triggers. Newlines and tabs are kept,
// other control characters are dropped.
func Text(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

func stripOnce(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '<' || r == '>':
			return -1
		case r == '\n' || r == '\t':
			return r
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return markupTriggers.ReplaceAllString(s, "")
}

// Line is Text for single-line fields: every whitespace run, newlines
// included, collapses into one space.
func Line(s string) string {
	for {
		next := strings.Join(strings.Fields(Text(s)), " ")
		if next == s {
			return s
		}
		s = next
	}
}

// Email trims and lowercases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LikePattern escapes q for use inside `LIKE ? ESCAPE '\'` and wraps it in
// wildcards for a substring match. The result is lowercased for matching
// against LOWER(column).
func LikePattern(q string) string {
	var b strings.Builder
	b.WriteByte('%')
	for _, r := range strings.ToLower(q) {
		if r == '%' || r == '_' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
