package validator

import (
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"followuply/internal/uuid"
)

// DateLayout is the calendar date format accepted from forms.
const DateLayout = "2006-01-02"

var validate = validator.New()

// IsUUID reports whether s is a canonical UUID.
func IsUUID(s string) bool {
	return uuid.IsValid(s)
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	if s == "" || len(s) > 254 {
		return false
	}
	return validate.Var(s, "email") == nil
}

// IsValidDate reports whether s is a real calendar date, either YYYY-MM-DD
// or RFC 3339.
func IsValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ParseDate parses a YYYY-MM-DD or RFC 3339 value. Dates are returned at
// midnight UTC; RFC 3339 values are converted to UTC.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// IsAmountInRange reports whether min <= v <= max.
func IsAmountInRange(v, min, max decimal.Decimal) bool {
	return v.GreaterThanOrEqual(min) && v.LessThanOrEqual(max)
}

// IsTextLengthInRange reports whether the rune count of s is within
// [min, max].
func IsTextLengthInRange(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
