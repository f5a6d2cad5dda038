package forms

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"followuply/internal/models"
	"followuply/internal/sanitizer"
	"followuply/internal/validator"
)

// requiredLine sanitizes a required single-line field and checks its length.
func (c *checker) requiredLine(label, raw string, max int) (string, bool) {
	v := sanitizer.Line(raw)
	if v == "" {
		c.fail("%s is required", label)
		return "", false
	}
	if !validator.IsTextLengthInRange(v, 1, max) {
		c.fail("%s must be between 1 and %d characters", label, max)
		return "", false
	}
	return v, true
}

// optionalLine sanitizes an optional single-line field. An empty result is
// valid and means "not set".
func (c *checker) optionalLine(label, raw string, max int) (string, bool) {
	v := sanitizer.Line(raw)
	if !validator.IsTextLengthInRange(v, 0, max) {
		c.fail("%s must be at most %d characters", label, max)
		return "", false
	}
	return v, true
}

// optionalText is optionalLine for multi-line free text.
func (c *checker) optionalText(label, raw string, max int) (string, bool) {
	v := sanitizer.Text(raw)
	if !validator.IsTextLengthInRange(v, 0, max) {
		c.fail("%s must be at most %d characters", label, max)
		return "", false
	}
	return v, true
}

func (c *checker) optionalEmail(raw string) (string, bool) {
	v := sanitizer.Email(raw)
	if v == "" {
		return "", true
	}
	if !validator.IsEmail(v) {
		c.fail("Email address is invalid")
		return "", false
	}
	return v, true
}

func (c *checker) optionalPhone(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", true
	}
	v := sanitizer.Phone(raw)
	if n := sanitizer.Digits(v); n < PhoneMinDigits || n > PhoneMaxDigits {
		c.fail("Phone number must have %d to %d digits", PhoneMinDigits, PhoneMaxDigits)
		return "", false
	}
	return v, true
}

// optionalUUID validates a reference to another record.
func (c *checker) optionalUUID(label, raw string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return "", true
	}
	if !validator.IsUUID(v) {
		c.fail("%s is invalid", label)
		return "", false
	}
	return v, true
}

func (c *checker) requiredUUID(label, raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		c.fail("%s is required", label)
		return "", false
	}
	return c.optionalUUID(label, raw)
}

// enumField checks raw against a closed set. An omitted value silently takes
// def; an explicit value outside the set is an error.
func enumField[T ~string](c *checker, label, raw string, valid func(T) bool, def T) (T, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return def, true
	}
	if !valid(T(v)) {
		c.fail("%s %q is not valid", label, raw)
		return def, false
	}
	return T(v), true
}

// requiredEnum is enumField for patches, where an empty value would clear a
// column that must always hold one.
func requiredEnum[T ~string](c *checker, label, raw string, valid func(T) bool) (T, bool) {
	var zero T
	if isBlank(raw) {
		c.fail("%s is required", label)
		return zero, false
	}
	return enumField(c, label, raw, valid, zero)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// currencyField is enumField for ISO codes, which are upper case.
func (c *checker) currencyField(raw string, def models.Currency) (models.Currency, bool) {
	v := models.Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if v == "" {
		return def, true
	}
	if !v.IsValid() {
		c.fail("Currency %q is not supported", raw)
		return def, false
	}
	return v, true
}

// tags sanitizes a tag list. Empty entries are dropped before the cap is
// applied, so they never count against it.
func (c *checker) tags(raw []string) ([]string, bool) {
	tags := sanitizer.Tags(raw)
	ok := true
	for _, tag := range tags {
		if !validator.IsTextLengthInRange(tag, 1, TagMaxLength) {
			c.fail("Tag %q must be at most %d characters", tag, TagMaxLength)
			ok = false
		}
	}
	if len(tags) > MaxTags {
		c.warn("Only the first %d tags were kept", MaxTags)
		tags = tags[:MaxTags]
	}
	return tags, ok
}

// amount parses a money amount given as a string or a number.
func (c *checker) amount(raw interface{}, required bool) (decimal.Decimal, bool) {
	d, present, parsed := parseAmount(raw)
	switch {
	case !present:
		if required {
			c.fail("Amount is required")
			return decimal.Zero, false
		}
		return decimal.Zero, true
	case !parsed:
		c.fail("Amount must be a number")
		return decimal.Zero, false
	}

	if !d.IsPositive() {
		c.fail("Amount must be greater than 0")
		return decimal.Zero, false
	}
	switch {
	case d.Exponent() > AmountMaxExponent:
		c.fail("Amount must not exceed %s", MaxAmount.StringFixed(2))
		return decimal.Zero, false
	case d.Exponent() < -AmountMaxExponent:
		c.fail("Amount has too many decimal places")
		return decimal.Zero, false
	}

	d = d.Round(2)
	if !d.IsPositive() {
		c.fail("Amount must be greater than 0")
		return decimal.Zero, false
	}
	if !validator.IsAmountInRange(d, MinAmount, MaxAmount) {
		c.fail("Amount must not exceed %s", MaxAmount.StringFixed(2))
		return decimal.Zero, false
	}
	return d, true
}

// parseAmount reports whether raw carried a value at all and, if so, whether
// it parsed as a finite decimal.
func parseAmount(raw interface{}) (d decimal.Decimal, present, parsed bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false, false
		}
		d, err := decimal.NewFromString(s)
		return d, true, err == nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, true, err == nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, true, false
		}
		return decimal.NewFromFloat(v), true, true
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, true, false
		}
		return decimal.NewFromFloat32(v), true, true
	case int:
		return decimal.NewFromInt(int64(v)), true, true
	case int64:
		return decimal.NewFromInt(v), true, true
	case decimal.Decimal:
		return v, true, true
	}
	return decimal.Zero, true, false
}

// date parses a calendar date field.
func (c *checker) date(label, raw string, required bool) (time.Time, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		if required {
			c.fail("%s is required", label)
			return time.Time{}, false
		}
		return time.Time{}, true
	}
	t, ok := validator.ParseDate(v)
	if !ok {
		c.fail("%s must be a valid date (YYYY-MM-DD)", label)
		return time.Time{}, false
	}
	return truncateDay(t), true
}

// truncateDay returns midnight UTC of t's calendar day.
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateSearchQuery sanitizes a free-text search query and enforces its
// length bounds.
func ValidateSearchQuery(raw string) Result[string] {
	c := &checker{}
	q := sanitizer.Line(raw)
	if !validator.IsTextLengthInRange(q, SearchMinLength, SearchMaxLength) {
		c.fail("Search must be between %d and %d characters", SearchMinLength, SearchMaxLength)
		q = ""
	}
	return finish(c, q)
}
