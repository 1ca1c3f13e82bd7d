// Package session holds one student's working state: the loaded exam
// schedule, the confirmed student ID, the course picked for adding, and the
// courses selected so far.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jackzampolin/roomfinder/internal/schedule"
)

var (
	ErrNotConfirmed      = errors.New("student ID is not confirmed")
	ErrEmptyStudentID    = errors.New("student ID is empty")
	ErrStudentIDChanged  = errors.New("student ID changed, confirm the new ID")
	ErrNoSchedule        = errors.New("no exam schedule loaded")
	ErrNoPendingCourse   = errors.New("pick a course and a section first")
	ErrCourseNotFound    = errors.New("course not found in the exam schedule")
	ErrAlreadySelected   = errors.New("course with this section is already selected")
	ErrSelectionNotFound = errors.New("selection not found")
	ErrNoCoursesFound    = errors.New("no courses found in the routine")
	ErrNoneMatched       = errors.New("courses found in the routine but none match the exam schedule")
)

// Selection is a course the student sits, with the section they belong to
// and the room resolved for them.
type Selection struct {
	ID              string `json:"id" yaml:"id"`
	schedule.Record `yaml:",inline"`
	AssignedRoom    string `json:"assigned_room" yaml:"assigned_room"`
}

// Pending is the course picked for adding and its section, if chosen.
type Pending struct {
	Course  string `json:"course,omitempty" yaml:"course,omitempty"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
}

// State is a read-only snapshot of a session.
type State struct {
	ID         string             `json:"id" yaml:"id"`
	Records    int                `json:"records" yaml:"records"`
	SortKey    schedule.SortKey   `json:"sort_key" yaml:"sort_key"`
	SortOrder  schedule.SortOrder `json:"sort_order" yaml:"sort_order"`
	StudentID  string             `json:"student_id,omitempty" yaml:"student_id,omitempty"`
	Confirmed  bool               `json:"confirmed" yaml:"confirmed"`
	Pending    Pending            `json:"pending" yaml:"pending"`
	Selections []Selection        `json:"selections" yaml:"selections"`
}

// Options configures a new Session.
type Options struct {
	SearchLimit int
	Logger      *slog.Logger
}

// Session is safe for concurrent use.
type Session struct {
	mu  sync.Mutex
	id  string
	log *slog.Logger

	records    []schedule.Record
	selections []Selection
	sortKey    schedule.SortKey
	sortOrder  schedule.SortOrder

	gate    *gate
	entered string
	pending Pending

	rooms       *cache.Cache
	searchLimit int
}

// New creates an empty session sorted by date, ascending.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	limit := opts.SearchLimit
	if limit <= 0 {
		limit = schedule.DefaultSearchLimit
	}
	id := uuid.NewString()
	return &Session{
		id:          id,
		log:         log.With("session", id),
		sortKey:     schedule.SortByDate,
		sortOrder:   schedule.Ascending,
		gate:        newGate(),
		rooms:       cache.New(cache.NoExpiration, 0),
		searchLimit: limit,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SetSearchLimit changes how many suggestions Search returns.
func (s *Session) SetSearchLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		n = schedule.DefaultSearchLimit
	}
	s.searchLimit = n
}

// Ingest replaces the schedule with the records normalized from grid. On
// failure the previous schedule is kept. Selections are kept either way.
func (s *Session) Ingest(grid [][]any) (int, error) {
	records, err := schedule.Normalize(grid, s.log)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	schedule.Sort(records, s.sortKey, s.sortOrder)
	s.records = records
	s.pending = Pending{}
	s.rooms.Flush()
	s.log.Info("schedule loaded", "records", len(records))
	return len(records), nil
}

// IngestFile loads the first sheet of an .xlsx workbook.
func (s *Session) IngestFile(path string) (int, error) {
	grid, err := schedule.LoadWorkbook(path)
	if err != nil {
		return 0, err
	}
	n, err := s.Ingest(grid)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return n, nil
}

// Records returns the schedule in the current sort order.
func (s *Session) Records() []schedule.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// Count returns the number of schedule records.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// SetSort reorders the schedule.
func (s *Session) SetSort(key schedule.SortKey, order schedule.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey, s.sortOrder = key, order
	schedule.Sort(s.records, key, order)
}

// Search looks up courses. An exact hit is picked for adding.
func (s *Session) Search(query string) schedule.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := schedule.Search(s.records, query, s.searchLimit)
	if res.Exact != nil {
		s.pending = Pending{Course: res.Exact.Course}
	}
	return res
}

// SelectCourse picks course for adding and clears any chosen section.
func (s *Session) SelectCourse(course string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	course = strings.TrimSpace(course)
	for _, r := range s.records {
		if r.SameCourse(course) {
			s.pending = Pending{Course: r.Course}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCourseNotFound, course)
}

// SetSection chooses the section of the picked course.
func (s *Session) SetSection(section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending.Course == "" {
		return ErrNoPendingCourse
	}
	s.pending.Section = strings.ToUpper(strings.TrimSpace(section))
	return nil
}

// Pending returns the course picked for adding.
func (s *Session) Pending() Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Sections lists the sections still available for course: the distinct
// sections on its records, or A, B, C... one per record when none are
// recorded. Letters sort before numbers.
func (s *Session) Sections(course string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found   []string
		entries int
	)
	for _, r := range s.records {
		if !r.SameCourse(course) {
			continue
		}
		entries++
		if sec := strings.ToUpper(r.Section); sec != "" && !slices.Contains(found, sec) {
			found = append(found, sec)
		}
	}
	if entries == 0 {
		return nil
	}
	if len(found) == 0 {
		for i := 0; i < entries && i < 26; i++ {
			found = append(found, string(rune('A'+i)))
		}
	}

	available := found[:0]
	for _, sec := range found {
		if !s.selected(course, sec) {
			available = append(available, sec)
		}
	}
	sort.SliceStable(available, func(i, j int) bool {
		return sectionLess(available[i], available[j])
	})
	return available
}

// sectionLess orders letter sections lexically, then numeric ones by value.
func sectionLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return true
	case errB != nil:
		return false
	default:
		return na < nb
	}
}

// CanAdd reports whether Add would be allowed to run.
func (s *Session) CanAdd() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.confirmed() && s.pending.Course != "" && s.pending.Section != ""
}

// Add selects the picked course and section for the confirmed student. The
// record named exactly like the pick wins over one whose name contains it.
func (s *Session) Add() (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.confirmed() {
		return Selection{}, ErrNotConfirmed
	}
	if s.pending.Course == "" || s.pending.Section == "" {
		return Selection{}, ErrNoPendingCourse
	}

	idx := slices.IndexFunc(s.records, func(r schedule.Record) bool {
		return r.SameCourse(s.pending.Course)
	})
	if idx < 0 {
		term := strings.ToLower(s.pending.Course)
		idx = slices.IndexFunc(s.records, func(r schedule.Record) bool {
			return strings.Contains(strings.ToLower(r.Course), term)
		})
	}
	if idx < 0 {
		return Selection{}, fmt.Errorf("%w: %s", ErrCourseNotFound, s.pending.Course)
	}
	rec := s.records[idx]
	if s.selected(rec.Course, s.pending.Section) {
		return Selection{}, fmt.Errorf("%w: %s section %s", ErrAlreadySelected, rec.Course, s.pending.Section)
	}

	sel := s.newSelection(rec, s.pending.Section)
	s.selections = append(s.selections, sel)
	s.pending = Pending{}
	s.log.Info("course added", "course", rec.Course, "section", sel.Section, "room", sel.AssignedRoom)
	return sel, nil
}

// Selections returns the selected courses in the order they were added.
func (s *Session) Selections() []Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selections)
}

// Remove drops the selection with the given ID.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.selections, func(sel Selection) bool { return sel.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSelectionNotFound, id)
	}
	s.selections = slices.Delete(s.selections, idx, idx+1)
	return nil
}

// RemoveAt drops the selection at index i (0-based).
func (s *Session) RemoveAt(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.selections) {
		return fmt.Errorf("%w: index %d", ErrSelectionNotFound, i)
	}
	s.selections = slices.Delete(s.selections, i, i+1)
	return nil
}

// ClearSelected drops every selection.
func (s *Session) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections = nil
}

// Clear resets the session to its initial state, keeping the sort order.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.selections = nil
	s.pending = Pending{}
	s.entered = ""
	s.gate.reset()
	s.rooms.Flush()
}

// EnterStudentID records a typed ID without confirming it. Typing an ID
// other than the confirmed one revokes the confirmation.
func (s *Session) EnterStudentID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = strings.TrimSpace(id)
	s.entered = id
	if s.gate.confirmed() && id != s.gate.id {
		s.gate.reset()
		return ErrStudentIDChanged
	}
	return nil
}

// ConfirmStudentID confirms id, or the last entered ID when id is empty.
// Confirming a different ID while one is confirmed revokes the old one and
// returns ErrStudentIDChanged; confirm again to accept the new ID.
func (s *Session) ConfirmStudentID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = strings.TrimSpace(id)
	if id == "" {
		id = s.entered
	}
	if id == "" {
		return ErrEmptyStudentID
	}
	s.entered = id

	if s.gate.confirmed() {
		if id == s.gate.id {
			return nil
		}
		s.gate.reset()
		return ErrStudentIDChanged
	}
	if err := s.gate.confirm(id); err != nil {
		return fmt.Errorf("failed to confirm student ID: %w", err)
	}
	s.log.Info("student ID confirmed", "student_id", id)
	return nil
}

// StudentID returns the confirmed ID, or "" when none is confirmed.
func (s *Session) StudentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.id
}

// Confirmed reports whether a student ID is confirmed.
func (s *Session) Confirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.confirmed()
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:         s.id,
		Records:    len(s.records),
		SortKey:    s.sortKey,
		SortOrder:  s.sortOrder,
		StudentID:  s.gate.id,
		Confirmed:  s.gate.confirmed(),
		Pending:    s.pending,
		Selections: slices.Clone(s.selections),
	}
}

// selected reports whether course is already selected with section.
// Callers hold s.mu.
func (s *Session) selected(course, section string) bool {
	return slices.ContainsFunc(s.selections, func(sel Selection) bool {
		return sel.SameCourse(course) && sel.Section == section
	})
}

// newSelection builds a selection of rec in section. Callers hold s.mu.
func (s *Session) newSelection(rec schedule.Record, section string) Selection {
	rec.Section = section
	return Selection{
		ID:           uuid.NewString(),
		Record:       rec,
		AssignedRoom: s.room(rec.Course, section),
	}
}

// room resolves a room for the confirmed student, memoized per schedule.
// Callers hold s.mu.
func (s *Session) room(course, section string) string {
	key := strings.ToLower(course) + "\x00" + s.gate.id + "\x00" + section
	if v, ok := s.rooms.Get(key); ok {
		return v.(string)
	}
	room := schedule.ResolveRoom(s.records, schedule.RoomQuery{
		Course:    course,
		StudentID: s.gate.id,
		Section:   section,
	}, s.log)
	s.rooms.Set(key, room, cache.NoExpiration)
	return room
}
