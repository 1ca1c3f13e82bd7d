package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// serialCutoff separates spreadsheet serial dates from ordinary numbers.
// Serials above it are day counts from serialEpoch.
const serialCutoff = 25567

// DisplayDateLayout is the short date form used for rendered dates.
const DisplayDateLayout = "1/2/2006"

var (
	serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

	numericDate = regexp.MustCompile(`^\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}$`)

	clockTime = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
	"2006/1/2",
	"1-2-2006",
	"1.2.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"02-Jan-2006",
	"2-Jan-06",
	time.RFC3339,
}

// FormatDate renders a date cell for display. Serial dates are converted to
// DisplayDateLayout; any other value is returned trimmed and unchanged.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && n > serialCutoff {
		return SerialDate(n).Format(DisplayDateLayout)
	}
	return raw
}

// IsNumericDate reports whether s looks like D/M/Y with /, - or . separators.
// FormatDate accepts other forms too; this only flags them.
func IsNumericDate(s string) bool {
	return numericDate.MatchString(s)
}

// SerialDate converts a spreadsheet day-count serial to a UTC date.
// The fractional (time of day) part is dropped.
func SerialDate(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(serial))
}

// ParseDate parses a displayed date. Unparsable values return the zero
// time, which orders before every real date.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == NotAvailable {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TimeMinutes converts the first HH:MM in s to minutes since midnight.
// Values without a clock time count as 0.
func TimeMinutes(s string) int {
	m := clockTime.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return h*60 + mins
}
