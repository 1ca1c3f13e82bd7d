// Package export renders a student's selected exams as a printable PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jackzampolin/roomfinder/internal/schedule"
	"github.com/jackzampolin/roomfinder/internal/session"
)

// ErrNothingSelected is returned when there are no courses to export.
var ErrNothingSelected = errors.New("select at least one course to export")

// Entry is one row of the exported schedule.
type Entry struct {
	Course  string `json:"course" yaml:"course"`
	Section string `json:"section" yaml:"section"`
	Date    string `json:"date" yaml:"date"`
	Time    string `json:"time" yaml:"time"`
	Room    string `json:"room" yaml:"room"`
}

// Schedule is a personalized exam schedule ready to render.
type Schedule struct {
	StudentID string    `json:"student_id" yaml:"student_id"`
	Generated time.Time `json:"generated" yaml:"generated"`
	Entries   []Entry   `json:"entries" yaml:"entries"`
}

// New builds the schedule for a session snapshot, ordered by date and then
// time. The session must have a confirmed student ID and a selection.
func New(st session.State, now time.Time) (*Schedule, error) {
	if !st.Confirmed || st.StudentID == "" {
		return nil, session.ErrNotConfirmed
	}
	if len(st.Selections) == 0 {
		return nil, ErrNothingSelected
	}

	sels := make([]session.Selection, len(st.Selections))
	copy(sels, st.Selections)
	sort.SliceStable(sels, func(i, j int) bool {
		di, dj := schedule.ParseDate(sels[i].Date), schedule.ParseDate(sels[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return schedule.TimeMinutes(sels[i].Time) < schedule.TimeMinutes(sels[j].Time)
	})

	out := &Schedule{StudentID: st.StudentID, Generated: now}
	for _, sel := range sels {
		out.Entries = append(out.Entries, Entry{
			Course:  sel.DisplayName(),
			Section: sel.Section,
			Date:    sel.Date,
			Time:    sel.Time,
			Room:    sel.AssignedRoom,
		})
	}
	return out, nil
}

// Filename returns Exam_Schedule_<id>_<YYYY-MM-DD>.pdf.
func (s *Schedule) Filename() string {
	return fmt.Sprintf("Exam_Schedule_%s_%s.pdf", s.StudentID, s.Generated.Format("2006-01-02"))
}

// WritePDF renders the schedule to w.
func (s *Schedule) WritePDF(w io.Writer, opts Options) error {
	data, err := s.Layout(opts)
	if err != nil {
		return err
	}
	if err := api.Create(nil, bytes.NewReader(data), w, nil); err != nil {
		return fmt.Errorf("failed to render schedule: %w", err)
	}
	return nil
}

// Write renders the schedule into dir and returns the file path.
func (s *Schedule) Write(dir string, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := s.WritePDF(&buf, opts); err != nil {
		return "", err
	}

	want := s.PageCount(opts)
	got, err := api.PageCount(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		return "", fmt.Errorf("failed to verify rendered schedule: %w", err)
	}
	if got != want {
		return "", fmt.Errorf("rendered schedule has %d pages, expected %d", got, want)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, s.Filename())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write schedule: %w", err)
	}
	return path, nil
}
