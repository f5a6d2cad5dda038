// Package sanitizer normalizes raw form input before it is validated or stored.
//
// Every function is deterministic, total and idempotent: applying it to its
// own output returns the same string. Invalid input degrades to an empty
// string rather than an error.
package sanitizer
