package schedule

import (
	"log/slog"
	"regexp"
	"strings"
)

var sectionToken = regexp.MustCompile(`(?i)^[a-z0-9]+$`)

// maxSectionLen bounds how long an inferred section label may be.
const maxSectionLen = 2

// Normalize converts a raw grid into canonical records. Rows whose course,
// date, time and room are all empty are dropped. It fails with ErrEmptySheet
// for an empty grid and ErrNoRecords when nothing survives.
func Normalize(grid [][]any, logger *slog.Logger) ([]Record, error) {
	log := logger
	if log == nil {
		log = slog.Default()
	}

	if len(grid) == 0 {
		return nil, ErrEmptySheet
	}

	h := InferHeader(grid)
	log.Debug("header inferred",
		"row", h.Row,
		"labels", h.Labels,
		"course", h.Column(FieldCourse),
		"course_title", h.Column(FieldCourseTitle),
		"section", h.Column(FieldSection),
		"date", h.Column(FieldDate),
		"time", h.Column(FieldTime),
		"room", h.Column(FieldRoom),
		"student_id", h.Column(FieldStudentID),
	)

	var records []Record
	for i := h.Row + 1; i < len(grid); i++ {
		rec, ok := normalizeRow(grid[i], h)
		if !ok {
			continue
		}
		if rec.Date != NotAvailable && !IsNumericDate(rec.Date) {
			log.Debug("date kept as written", "row", i, "date", rec.Date)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	log.Debug("records normalized", "rows", len(grid)-h.Row-1, "records", len(records))
	return records, nil
}

func normalizeRow(row []any, h Header) (Record, bool) {
	course := cellAt(row, h.Column(FieldCourse))
	courseTitle := cellAt(row, h.Column(FieldCourseTitle))
	section := cellAt(row, h.Column(FieldSection))
	date := cellAt(row, h.Column(FieldDate))
	tm := cellAt(row, h.Column(FieldTime))
	room := cellAt(row, h.Column(FieldRoom))
	studentID := cellAt(row, h.Column(FieldStudentID))

	if course == "" && date == "" && tm == "" && room == "" {
		return Record{}, false
	}

	if section == "" {
		section = inferSection(row, course, date, tm)
	}

	var code, title string
	if courseTitle != "" && courseTitle != NotAvailable {
		title = courseTitle
		code = course
		if code == "" {
			code = ExtractCode(courseTitle)
		}
	} else {
		code, title = SplitCourse(course)
	}

	return Record{
		Course:    orNA(course),
		Code:      code,
		Title:     title,
		Section:   section,
		Date:      orNA(FormatDate(date)),
		Time:      orNA(tm),
		Room:      orNA(room),
		StudentID: studentID,
	}, true
}

// inferSection guesses a section label for rows without a section column:
// first from column 0, then from the first short alphanumeric cell that is
// not the course, date or time.
func inferSection(row []any, course, date, tm string) string {
	if first := cellAt(row, 0); looksLikeSection(first) {
		return strings.ToUpper(first)
	}
	for j := range row {
		v := cellAt(row, j)
		if !looksLikeSection(v) {
			continue
		}
		if v == course || v == date || v == tm {
			continue
		}
		if strings.ContainsAny(v, ":/") {
			continue
		}
		return strings.ToUpper(v)
	}
	return ""
}

func looksLikeSection(v string) bool {
	return v != "" && len(v) <= maxSectionLen && sectionToken.MatchString(v)
}
