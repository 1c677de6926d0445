// Package gnerr provides the structured error type shared by every
// component of the taxonomy engine, along with small console helpers
// for user-facing warnings and notices.
//
// The shape is deliberately the one the wider gnames ecosystem uses
// (Code/Msg/Vars/Err, Warn/Info writing templated, markup-light text to
// the console) so error handling here reads the same way it does
// throughout the rest of the stack, without pulling in a whole
// scientific-name-parsing module just to reuse one struct.
package gnerr

import (
	"fmt"
	"os"
	"strings"
)

// Code identifies the class of an Error without requiring callers to
// match on message text.
type Code int

// Error is a structured error carrying a machine-checkable Code, a
// printf-style message template with markup (<em>...</em>) for console
// rendering, the template arguments, and the underlying cause.
type Error struct {
	Code Code
	Msg  string
	Vars []any
	Err  error
}

// Error implements the error interface. It renders Msg with Vars
// (stripping the <em> markup meant for colored terminals) and appends
// the underlying cause when present.
func (e *Error) Error() string {
	text := stripMarkup(e.Msg)
	if len(e.Vars) > 0 {
		text = fmt.Sprintf(text, e.Vars...)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", text, e.Err)
	}
	return text
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func stripMarkup(s string) string {
	s = strings.ReplaceAll(s, "<em>", "")
	s = strings.ReplaceAll(s, "</em>", "")
	return s
}

// Warn prints a formatted, markup-stripped warning to stderr. It never
// returns an error: warnings are advisory and must never abort a
// batch.
func Warn(format string, args ...any) {
	text := stripMarkup(format)
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	fmt.Fprintln(os.Stderr, text)
}

// Info prints a formatted, markup-stripped notice to stdout.
func Info(format string, args ...any) {
	text := stripMarkup(format)
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	fmt.Println(text)
}
