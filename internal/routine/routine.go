// Package routine reads a class-routine document and recovers the
// (course code, section) pairs and student ID printed in it.
package routine

import "errors"

// ErrStudentIDNotFound is returned when no student ID can be located in a
// routine and none was supplied by other means.
var ErrStudentIDNotFound = errors.New("could not find a student ID in the routine")

// Course is one course code and section pair recovered from a routine.
// Code is uppercased with spaces, hyphens and underscores removed.
type Course struct {
	Code    string `json:"code" yaml:"code"`
	Section string `json:"section" yaml:"section"`
}

func (c Course) String() string {
	return c.Code + " (" + c.Section + ")"
}

// Text is the text layer of a routine in two shapes: Flat has one line per
// page with fragments joined by spaces, Fragments keeps every fragment in
// reading order across all pages.
type Text struct {
	Flat      string
	Fragments []string
	Pages     int
}

// Empty reports whether the document had no usable text layer.
func (t *Text) Empty() bool {
	return t == nil || len(t.Fragments) == 0
}
