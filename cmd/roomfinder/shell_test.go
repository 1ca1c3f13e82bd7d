package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jackzampolin/roomfinder/internal/config"
	"github.com/jackzampolin/roomfinder/internal/session"
)

// writeSchedule saves a small exam schedule workbook and returns its path.
func writeSchedule(t *testing.T) string {
	t.Helper()
	rows := [][]any{
		{"Spring 2025 Final Exams"},
		{"Course", "Section", "Date", "Time", "Room"},
		{"CSE251 Data Structures", "A", "12/02/2024", "10:00", "304 (011221300-011221400)"},
		{"CSE251 Data Structures", "B", "12/02/2024", "10:00", "305 (011221300-011221400)"},
		{"MAT101 Calculus", "", "12/01/2024", "14:00", "201 (011221000-011221350), 202 (011221351-011221999)"},
		{"MAT101 Calculus", "", "12/01/2024", "14:00", "202"},
	}
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newTestShell(t *testing.T, out *bytes.Buffer) *shell {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	sess := session.New(session.Options{Logger: logger})
	_, err := sess.IngestFile(writeSchedule(t))
	require.NoError(t, err)
	return &shell{
		ctx:     context.Background(),
		sess:    sess,
		out:     out,
		config:  config.DefaultConfig,
		exports: t.TempDir(),
		logger:  logger,
		now:     func() time.Time { return time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC) },
	}
}

func TestShell_Session(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	outDir := t.TempDir()

	script := strings.Join([]string{
		"id 011221320",
		"add",
		"confirm",
		"search cse251",
		"section b",
		"add",
		"search calc",
		"pick 1",
		"section A",
		"add",
		"list",
		"export " + outDir,
		"quit",
		"search never reached",
	}, "\n")
	require.NoError(t, sh.run(strings.NewReader(script)))

	got := out.String()
	assert.Contains(t, got, "roomfinder shell (4 exams loaded)")
	assert.Contains(t, got, "error: student ID is not confirmed")
	assert.Contains(t, got, "student ID 011221320 confirmed")
	assert.Contains(t, got, "section B of CSE251 Data Structures, run add")
	assert.Contains(t, got, "picked CSE251 Data Structures, sections: A, B")
	assert.Contains(t, got, "added CSE251 - Data Structures section B: room 305")
	assert.Contains(t, got, "picked MAT101 Calculus, sections: A, B")
	assert.Contains(t, got, "added MAT101 - Calculus section A: room 201")
	assert.Contains(t, got, "1. CSE251 - Data Structures [B]")
	assert.NotContains(t, got, "never reached")

	path := filepath.Join(outDir, "Exam_Schedule_011221320_2025-01-15.pdf")
	assert.Contains(t, got, "wrote "+path)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestShell_SectionNeedsConfirmedID(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)

	script := "search cse251\nsection a\nconfirm 011221320\nsection a\n"
	require.NoError(t, sh.run(strings.NewReader(script)))
	assert.Contains(t, out.String(), "section A of CSE251 Data Structures, confirm a student ID, then add")
	assert.Contains(t, out.String(), "section A of CSE251 Data Structures, run add")
}

func TestShell_Commands(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"unknown", "fly", `error: unknown command "fly"`},
		{"help", "help", "commands:"},
		{"bad sort key", "sort seat", "unknown sort key"},
		{"sort", "sort room desc", "sorted by room desc"},
		{"pick out of range", "pick 3", "no suggestion 3"},
		{"section before pick", "section A", "pick a course and a section first"},
		{"remove missing", "remove 1", "selection not found"},
		{"export without ID", "export", "student ID is not confirmed"},
		{"clear all", "clear all", "session cleared"},
		{"no match", "search physics", "no matching courses"},
		{"load usage", "load", "usage: load"},
		{"import missing file", "import /does/not/exist.pdf", "error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			sh := newTestShell(t, &out)
			require.NoError(t, sh.run(strings.NewReader(tt.line)))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestShell_RemoveAndState(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)

	script := "confirm 011221320\nsearch CSE251\nsection A\nadd\nremove 1\nlist\n"
	require.NoError(t, sh.run(strings.NewReader(script)))
	assert.Contains(t, out.String(), "removed")
	assert.Contains(t, out.String(), "no courses selected")
	assert.Empty(t, sh.sess.Selections())
}
