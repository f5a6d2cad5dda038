package sanitizer

import "strings"

// Phone keeps digits only, plus a leading '+' when the trimmed input starts
// with one.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	if s[0] == '+' {
		b.WriteByte('+')
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "+" {
		return ""
	}
	return out
}

// Digits counts the digits of an already sanitized phone number.
func Digits(phone string) int {
	return len(strings.TrimPrefix(phone, "+"))
}
