package session

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jackzampolin/roomfinder/internal/routine"
	"github.com/jackzampolin/roomfinder/internal/schedule"
)

// ErrStudentIDNotFound is returned by ImportRoutine when the routine has no
// student ID and none was confirmed beforehand.
var ErrStudentIDNotFound = routine.ErrStudentIDNotFound

// scheduleSampleSize bounds ImportReport.ScheduleSample.
const scheduleSampleSize = 10

var codeParts = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// matchTier is one way of deciding that an extracted code names a record.
type matchTier struct {
	name  string
	match func(code string, r schedule.Record) bool
}

// matchTiers are tried in order over the whole schedule; the first tier
// with any hit wins.
var matchTiers = []matchTier{
	{name: "exact", match: exactCode},
	{name: "numeric", match: numericCode},
	{name: "substring", match: courseContains},
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func recordCode(r schedule.Record) string {
	if r.Code != "" {
		return r.Code
	}
	return schedule.ExtractCode(r.Course)
}

func exactCode(code string, r schedule.Record) bool {
	rc := compact(recordCode(r))
	return rc != "" && strings.EqualFold(rc, compact(code))
}

// numericCode compares letter prefixes and the integer value of the digits,
// so CSE0251 matches CSE251.
func numericCode(code string, r schedule.Record) bool {
	a := codeParts.FindStringSubmatch(strings.ToUpper(compact(code)))
	b := codeParts.FindStringSubmatch(strings.ToUpper(compact(recordCode(r))))
	if a == nil || b == nil || a[1] != b[1] {
		return false
	}
	na, errA := strconv.ParseInt(a[2], 10, 64)
	nb, errB := strconv.ParseInt(b[2], 10, 64)
	return errA == nil && errB == nil && na == nb
}

func courseContains(code string, r schedule.Record) bool {
	c := strings.ToLower(compact(code))
	return c != "" && strings.Contains(strings.ToLower(compact(r.Course)), c)
}

// MatchCourse finds the record an extracted code refers to and names the
// tier that matched.
func MatchCourse(records []schedule.Record, code string) (schedule.Record, string, bool) {
	for _, tier := range matchTiers {
		for _, r := range records {
			if tier.match(code, r) {
				return r, tier.name, true
			}
		}
	}
	return schedule.Record{}, "", false
}

// ImportReport describes one routine import.
type ImportReport struct {
	StudentID     string           `json:"student_id,omitempty" yaml:"student_id,omitempty"`
	AutoConfirmed bool             `json:"auto_confirmed" yaml:"auto_confirmed"`
	Extracted     []routine.Course `json:"extracted" yaml:"extracted"`
	Matched       []Selection      `json:"matched" yaml:"matched"`
	Skipped       []routine.Course `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Unmatched     []routine.Course `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`

	// ScheduleSample lists a few schedule codes when nothing matched.
	ScheduleSample []string `json:"schedule_sample,omitempty" yaml:"schedule_sample,omitempty"`
}

// ImportRoutine selects every course of a routine that appears in the
// schedule. A student ID printed in the routine is confirmed on the session.
// Pairs that are already selected are skipped and pairs missing from the
// schedule are reported; neither fails the import unless nothing at all
// matched.
func (s *Session) ImportRoutine(text *routine.Text, opts routine.ExtractOptions) (*ImportReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &ImportReport{}
	if len(s.records) == 0 {
		return report, ErrNoSchedule
	}

	if id, ok := routine.FindStudentID(text); ok {
		if s.gate.id != id {
			s.gate.reset()
			if err := s.gate.confirm(id); err != nil {
				return report, err
			}
			report.AutoConfirmed = true
			s.log.Info("student ID confirmed from routine", "student_id", id)
		}
		s.entered = id
	} else if !s.gate.confirmed() {
		return report, ErrStudentIDNotFound
	}
	report.StudentID = s.gate.id

	if opts.Logger == nil {
		opts.Logger = s.log
	}
	report.Extracted = routine.ExtractCourses(text, opts)
	if len(report.Extracted) == 0 {
		return report, ErrNoCoursesFound
	}

	records := s.records
	for _, c := range report.Extracted {
		rec, tier, ok := MatchCourse(records, c.Code)
		if !ok {
			s.log.Debug("no schedule match", "code", c.Code)
			report.Unmatched = append(report.Unmatched, c)
			continue
		}
		if s.selected(rec.Course, c.Section) {
			report.Skipped = append(report.Skipped, c)
			continue
		}
		sel := s.newSelection(rec, c.Section)
		s.selections = append(s.selections, sel)
		report.Matched = append(report.Matched, sel)
		s.log.Debug("matched routine course", "code", c.Code, "tier", tier, "course", rec.Course, "room", sel.AssignedRoom)
	}

	if len(report.Matched) == 0 && len(report.Skipped) == 0 {
		for _, r := range records[:min(scheduleSampleSize, len(records))] {
			code := recordCode(r)
			if code == "" {
				code = r.Course
			}
			report.ScheduleSample = append(report.ScheduleSample, code)
		}
		return report, ErrNoneMatched
	}
	return report, nil
}
