package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferHeader(t *testing.T) {
	t.Run("finds header after title rows", func(t *testing.T) {
		grid := [][]any{
			{"Midterm Examination Spring 2025"},
			{nil},
			{"Course", "Section", "Date", "Time", "Room"},
			{"CSE251 Data Structures", "A", "12/01/2024", "10:00", "304"},
		}
		h := InferHeader(grid)
		assert.Equal(t, 2, h.Row)
		assert.Equal(t, 0, h.Column(FieldCourse))
		assert.Equal(t, 1, h.Column(FieldSection))
		assert.Equal(t, 2, h.Column(FieldDate))
		assert.Equal(t, 3, h.Column(FieldTime))
		assert.Equal(t, 4, h.Column(FieldRoom))
		assert.Equal(t, -1, h.Column(FieldCourseTitle))
		assert.Equal(t, -1, h.Column(FieldStudentID))
	})

	t.Run("falls back to row zero", func(t *testing.T) {
		grid := [][]any{
			{"Kurs", "Tag", "Uhr"},
			{"CSE251", "12/01/2024", "10:00"},
		}
		h := InferHeader(grid)
		assert.Equal(t, 0, h.Row)
		assert.Equal(t, []string{"kurs", "tag", "uhr"}, h.Labels)
		assert.Equal(t, -1, h.Column(FieldCourse))
	})

	t.Run("cell types do not change the header row", func(t *testing.T) {
		asText := [][]any{
			{"2024", "Spring"},
			{"Course", "Date", "Time"},
		}
		asNumber := [][]any{
			{2024.0, "Spring"},
			{"Course", "Date", "Time"},
		}
		assert.Equal(t, InferHeader(asText).Row, InferHeader(asNumber).Row)
	})

	t.Run("synonyms match by containment", func(t *testing.T) {
		h := InferHeader([][]any{{"Subject", "Prüfungsdatum", "Zeitplan", "Raum", "Matrikelnummer"}})
		assert.Equal(t, 0, h.Column(FieldCourse))
		assert.Equal(t, 1, h.Column(FieldDate))
		assert.Equal(t, 2, h.Column(FieldTime))
		assert.Equal(t, 3, h.Column(FieldRoom))
		assert.Equal(t, 4, h.Column(FieldStudentID))
	})

	t.Run("a label can serve several fields", func(t *testing.T) {
		h := InferHeader([][]any{{"Course Title", "Date"}})
		assert.Equal(t, 0, h.Column(FieldCourse))
		assert.Equal(t, 0, h.Column(FieldCourseTitle))
	})
}

func TestNormalize_EndToEnd(t *testing.T) {
	grid := [][]any{
		{"Course", "Section", "Date", "Time", "Room"},
		{"CSE251 Data Structures", "A", "12/01/2024", "10:00", "304 (011221300-011221400)"},
	}

	records, err := Normalize(grid, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "CSE251 Data Structures", r.Course)
	assert.Equal(t, "CSE251", r.Code)
	assert.Equal(t, "Data Structures", r.Title)
	assert.Equal(t, "A", r.Section)
	assert.Equal(t, "12/01/2024", r.Date)
	assert.Equal(t, "10:00", r.Time)
	assert.Equal(t, "304 (011221300-011221400)", r.Room)

	room := ResolveRoom(records, RoomQuery{Course: r.Course, StudentID: "011221320", Section: "A"}, nil)
	assert.Equal(t, "304", room)
}

func TestNormalize_DropsEmptyRows(t *testing.T) {
	grid := [][]any{
		{"Course", "Date", "Time", "Room", "Student ID"},
		{"", "", "", "", "011221300"},
		{},
		{"MAT101 Calculus", "", "", "", ""},
	}
	records, err := Normalize(grid, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MAT101 Calculus", records[0].Course)
	assert.Equal(t, NotAvailable, records[0].Date)
	assert.Equal(t, NotAvailable, records[0].Room)

	for _, r := range records {
		allEmpty := r.Course == NotAvailable && r.Date == NotAvailable && r.Time == NotAvailable && r.Room == NotAvailable
		assert.False(t, allEmpty)
	}
}

func TestNormalize_Errors(t *testing.T) {
	_, err := Normalize(nil, nil)
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = Normalize([][]any{{"Course", "Date"}, {"", ""}}, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestNormalize_SectionInference(t *testing.T) {
	header := []any{"Sl", "Course", "Date", "Time", "Room"}

	tests := []struct {
		name string
		row  []any
		want string
	}{
		{"first column", []any{"b", "CSE251 Data Structures", "12/01/2024", "10:00", "304"}, "B"},
		{"numeric first column", []any{3.0, "CSE251 Data Structures", "12/01/2024", "10:00", "304"}, "3"},
		{"scan skips long cells", []any{"101", "CSE251 Data Structures", "12/01/2024", "10:00", "C"}, "C"},
		{"no candidate", []any{"101", "CSE251 Data Structures", "12/01/2024", "10:00", "304"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Normalize([][]any{header, tt.row}, nil)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Section)
			assert.Equal(t, tt.want != "", records[0].HasSection())
		})
	}
}

func TestNormalize_TitleColumn(t *testing.T) {
	grid := [][]any{
		{"Course", "Title", "Date", "Time", "Room"},
		{"CSE 251", "Data Structures", "12/01/2024", "10:00", "304"},
		{"", "Intro Lab CSE110", "12/02/2024", "14:00", "305"},
		{"EEE101", "N/A", "12/03/2024", "09:00", "306"},
	}
	records, err := Normalize(grid, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "CSE 251", records[0].Code)
	assert.Equal(t, "Data Structures", records[0].Title)

	assert.Equal(t, NotAvailable, records[1].Course)
	assert.Equal(t, "CSE110", records[1].Code)
	assert.Equal(t, "Intro Lab CSE110", records[1].Title)

	assert.Equal(t, "EEE101", records[2].Code)
	assert.Equal(t, "EEE101", records[2].Title)
}

func TestSplitCourse(t *testing.T) {
	tests := []struct {
		field     string
		wantCode  string
		wantTitle string
	}{
		{"CSE251 Data Structures", "CSE251", "Data Structures"},
		{"Data Structures - CSE251", "CSE251", "Data Structures"},
		{"cse251: Data Structures", "CSE251", "Data Structures"},
		{"Physics PHY10 Lab", "PHY10", "Physics Lab"},
		{"CSE251", "CSE251", "CSE251"},
		{"Calculus", "", "Calculus"},
		{"MATH 101", "", "MATH 101"},
		{"", "", ""},
		{NotAvailable, "", NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			code, title := SplitCourse(tt.field)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}

func TestExtractCode(t *testing.T) {
	assert.Equal(t, "CSE251", ExtractCode("Computer Science cse251"))
	assert.Equal(t, "MATH1101", ExtractCode("MATH1101 Calculus I"))
	assert.Equal(t, "", ExtractCode("EEE10 Circuits"))
	assert.Equal(t, "", ExtractCode("Data Structures"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "CSE251 - Data Structures", Record{Course: "CSE251 Data Structures", Code: "CSE251", Title: "Data Structures"}.DisplayName())
	assert.Equal(t, "Calculus", Record{Course: "Calculus", Title: "Calculus"}.DisplayName())
	assert.Equal(t, "CSE251", Record{Course: "CSE251", Code: "CSE251", Title: "CSE251"}.DisplayName())
}
