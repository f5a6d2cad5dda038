// Package forms validates and sanitizes raw form payloads, one validator per
// entity. Each validator makes a single pass over the input and returns a
// Result: blocking errors, non-blocking warnings and the sanitized value.
//
// Validators are pure functions of their input and the supplied clock
// reading; the service layer runs them again next to the store no matter
// what the caller already checked.
package forms
