package schedule

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newWorkbook(t *testing.T, rows ...[]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

func TestReadWorkbook(t *testing.T) {
	f := newWorkbook(t,
		[]any{"Final Exam Schedule"},
		[]any{"Course", "Section", "Date", "Time", "Room"},
		[]any{"CSE251 Data Structures", "A", 45627, "10:00", "304 (011221300-011221400)"},
		[]any{"MAT101 Calculus", "B", "12/03/2024", "14:00", "201"},
	)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	grid, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, grid, 4)

	records, err := Normalize(grid, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "12/1/2024", records[0].Date)
	assert.Equal(t, "12/03/2024", records[1].Date)
	assert.Equal(t, "A", records[0].Section)
}

func TestReadWorkbook_Invalid(t *testing.T) {
	_, err := ReadWorkbook(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestLoadWorkbook(t *testing.T) {
	dir := t.TempDir()

	f := newWorkbook(t,
		[]any{"Course", "Date", "Time", "Room"},
		[]any{"CSE251", "12/01/2024", "10:00", "304"},
	)
	path := filepath.Join(dir, "exams.xlsx")
	require.NoError(t, f.SaveAs(path))

	grid, err := LoadWorkbook(path)
	require.NoError(t, err)
	assert.Len(t, grid, 2)

	_, err = LoadWorkbook(filepath.Join(dir, "exams.csv"))
	assert.ErrorContains(t, err, "unsupported spreadsheet")

	_, err = LoadWorkbook(filepath.Join(dir, "missing.xlsx"))
	assert.Error(t, err)
}
