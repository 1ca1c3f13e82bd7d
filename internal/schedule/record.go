// Package schedule turns an exam-schedule spreadsheet into canonical exam
// records and answers questions about them: sort order, search, and which
// room a given student sits in.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable is the display value for empty course, date, time and room cells.
const NotAvailable = "N/A"

var (
	// ErrEmptySheet is returned when the spreadsheet has no rows at all.
	ErrEmptySheet = errors.New("spreadsheet is empty or invalid")

	// ErrNoRecords is returned when no data row survives normalization.
	ErrNoRecords = errors.New("no valid exam data found in the spreadsheet")
)

// Record is one scheduled exam sitting. Code and Title are derived once from
// the course cells at normalization time and never recomputed.
type Record struct {
	Course    string `json:"course" yaml:"course"`
	Code      string `json:"code,omitempty" yaml:"code,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Section   string `json:"section,omitempty" yaml:"section,omitempty"`
	Date      string `json:"date" yaml:"date"`
	Time      string `json:"time" yaml:"time"`
	Room      string `json:"room" yaml:"room"`
	StudentID string `json:"student_id,omitempty" yaml:"student_id,omitempty"`
}

// HasSection reports whether a section was read or inferred for the record.
func (r Record) HasSection() bool {
	return r.Section != ""
}

// SameCourse reports whether course names the same course as r (case-insensitive).
func (r Record) SameCourse(course string) bool {
	return strings.EqualFold(r.Course, course)
}

// DisplayName renders "CODE - Title" when both parts exist and differ,
// falling back to the raw course field.
func (r Record) DisplayName() string {
	code := r.Code
	if code == "" {
		code = ExtractCode(r.Course)
	}
	title := r.Title
	if title == "" {
		title = r.Course
	}
	if code != "" && title != "" && code != title {
		return fmt.Sprintf("%s - %s", code, title)
	}
	return r.Course
}

// CellText renders a raw spreadsheet cell as trimmed text. Numbers print
// without a trailing ".0" so 2024 and "2024" read the same.
func CellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	case fmt.Stringer:
		return strings.TrimSpace(c.String())
	default:
		return strings.TrimSpace(fmt.Sprint(c))
	}
}

// cellAt returns the text of row[idx], or "" when idx is unmapped or out of range.
func cellAt(row []any, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return CellText(row[idx])
}

// firstDigits returns the first run of digits in s, or "" if none.
func firstDigits(s string) string {
	return digitRun.FindString(s)
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
