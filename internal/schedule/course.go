package schedule

import (
	"regexp"
	"strings"
)

var (
	digitRun = regexp.MustCompile(`\d+`)

	// catalogCode is a standalone code such as CSE251 or MATH1101.
	catalogCode = regexp.MustCompile(`(?i)\b([a-z]{2,4}\d{3,4})\b`)

	// looseCode also accepts two-digit numbers (e.g. EEE10) when splitting a course field.
	looseCode = regexp.MustCompile(`(?i)\b([a-z]{2,4}\d{2,4})\b`)

	edgeSeparators = regexp.MustCompile(`^\s*[-–—:,]\s*|\s*[-–—:,]\s*$`)
	spaceRuns      = regexp.MustCompile(`\s+`)

	titleThenCode = regexp.MustCompile(`(?i)^(.+?)\s*[-–—]?\s*\b([a-z]{2,4}\d{2,4})$`)
	codeThenTitle = regexp.MustCompile(`(?i)^([a-z]{2,4}\d{2,4})\b\s*[-–—]?\s*(.+)$`)
)

// ExtractCode returns the first catalog code in s, uppercased, or "".
func ExtractCode(s string) string {
	m := catalogCode.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// SplitCourse derives a course code and title from a single course field
// such as "CSE251 Data Structures" or "Data Structures - CSE251".
// When no code can be found the title is the field itself.
func SplitCourse(field string) (code, title string) {
	if field == "" || field == NotAvailable {
		return "", field
	}

	if m := looseCode.FindStringSubmatch(field); m != nil {
		code = strings.ToUpper(m[1])
	}

	title = strings.TrimSpace(field)
	if code != "" {
		codeRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(code) + `\b`)
		title = strings.TrimSpace(codeRe.ReplaceAllString(field, ""))
		title = strings.TrimSpace(edgeSeparators.ReplaceAllString(title, ""))
		title = spaceRuns.ReplaceAllString(title, " ")
	}

	if code == "" || title == "" {
		if m := titleThenCode.FindStringSubmatch(field); m != nil {
			return strings.ToUpper(m[2]), strings.TrimSpace(m[1])
		}
		if m := codeThenTitle.FindStringSubmatch(field); m != nil {
			return strings.ToUpper(m[1]), strings.TrimSpace(m[2])
		}
	}

	if title == "" {
		title = field
	}
	return code, title
}
