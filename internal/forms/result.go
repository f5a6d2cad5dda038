package forms

import "fmt"

// Result is the outcome of validating one form.
type Result[T any] struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Value    T        `json:"sanitized_value"`
}

// checker accumulates messages during a validation pass.
type checker struct {
	errors   []string
	warnings []string
}

func (c *checker) fail(format string, args ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *checker) warn(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func finish[T any](c *checker, value T) Result[T] {
	errs := c.errors
	if errs == nil {
		errs = []string{}
	}
	warnings := c.warnings
	if warnings == nil {
		warnings = []string{}
	}
	return Result[T]{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
		Value:    value,
	}
}

// Changes maps column names to validated values for a partial update. Only
// fields that were present in the patch and passed validation appear.
type Changes map[string]interface{}

// Has reports whether column is being changed.
func (c Changes) Has(column string) bool {
	_, ok := c[column]
	return ok
}
