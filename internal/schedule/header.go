package schedule

import (
	"strings"
)

// headerScanRows is how many leading rows are inspected for a header.
const headerScanRows = 5

// Field is a semantic column of the exam schedule.
type Field int

const (
	FieldCourse Field = iota
	FieldCourseTitle
	FieldSection
	FieldDate
	FieldTime
	FieldRoom
	FieldStudentID
)

func (f Field) String() string {
	switch f {
	case FieldCourse:
		return "course"
	case FieldCourseTitle:
		return "course_title"
	case FieldSection:
		return "section"
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldRoom:
		return "room"
	case FieldStudentID:
		return "student_id"
	default:
		return "unknown"
	}
}

// headerKeywords mark a row as the header row.
var headerKeywords = []string{"course", "subject", "date", "time", "room"}

// fieldSynonyms is evaluated in order; each field takes the first label
// that equals or contains one of its terms.
var fieldSynonyms = []struct {
	field Field
	terms []string
}{
	{FieldCourse, []string{"course", "subject", "module", "exam"}},
	{FieldCourseTitle, []string{"course title", "title", "course name", "subject title", "exam title"}},
	{FieldSection, []string{"section", "sec", "group", "class"}},
	{FieldDate, []string{"date", "day", "datum"}},
	{FieldTime, []string{"zeit", "time", "hour"}},
	{FieldRoom, []string{"room", "raum", "location", "venue"}},
	{FieldStudentID, []string{"student", "id", "studentid", "student_id", "matrikel"}},
}

// Header is the inferred header row and its column mapping.
type Header struct {
	Row     int           `json:"row" yaml:"row"`
	Labels  []string      `json:"labels" yaml:"labels"`
	Columns map[Field]int `json:"-" yaml:"-"`
}

// Column returns the column index mapped to f, or -1.
func (h Header) Column(f Field) int {
	if idx, ok := h.Columns[f]; ok {
		return idx
	}
	return -1
}

// InferHeader locates the header row among the first rows of grid and maps
// its labels to fields. Row 0 is used when no row looks like a header.
func InferHeader(grid [][]any) Header {
	h := Header{Row: -1}
	for i := 0; i < min(headerScanRows, len(grid)); i++ {
		joined := strings.ToLower(joinRow(grid[i]))
		if containsAny(joined, headerKeywords) {
			h.Row = i
			break
		}
	}
	if h.Row == -1 {
		h.Row = 0
	}

	if h.Row < len(grid) {
		h.Labels = make([]string, len(grid[h.Row]))
		for i, cell := range grid[h.Row] {
			h.Labels[i] = strings.ToLower(CellText(cell))
		}
	}

	h.Columns = make(map[Field]int, len(fieldSynonyms))
	for _, fs := range fieldSynonyms {
		h.Columns[fs.field] = findColumn(h.Labels, fs.terms)
	}
	return h
}

// findColumn returns the index of the first label matching any term, or -1.
func findColumn(labels []string, terms []string) int {
	for i, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		for _, term := range terms {
			if label == term || strings.Contains(label, term) {
				return i
			}
		}
	}
	return -1
}

func joinRow(row []any) string {
	parts := make([]string, len(row))
	for i, cell := range row {
		parts[i] = CellText(cell)
	}
	return strings.Join(parts, " ")
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
