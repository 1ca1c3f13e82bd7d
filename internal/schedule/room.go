package schedule

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Display values returned by ResolveRoom when no room can be assigned.
const (
	RoomMissingID = "N/A - Enter Student ID"
	RoomInvalidID = "N/A - Invalid ID"
	RoomUnknown   = NotAvailable
)

var studentIDDigits = regexp.MustCompile(`^\d+$`)

// rangeRule recognizes one notation for "room N serves IDs lo-hi" inside a
// room descriptor. Submatch 1 is the room, 2 and 3 are the bounds.
type rangeRule struct {
	name string
	// sectioned rules only apply when a section is known.
	sectioned bool
	// all scans every occurrence instead of only the first.
	all     bool
	pattern func(section string) *regexp.Regexp
}

func fixed(re *regexp.Regexp) func(string) *regexp.Regexp {
	return func(string) *regexp.Regexp { return re }
}

var (
	roomRange         = regexp.MustCompile(`(\d+)\s*\((\d+)-(\d+)\)`)
	roomRangeAnchored = regexp.MustCompile(`^(\d+)\((\d+)-(\d+)\)$`)
	roomForRange      = regexp.MustCompile(`(?i)Room\s+(\d+)\s+for\s+(\d+)-(\d+)`)
)

// rangeRules are tried in order for every candidate record.
var rangeRules = []rangeRule{
	{
		name:      "section_range",
		sectioned: true,
		pattern: func(section string) *regexp.Regexp {
			return regexp.MustCompile(`(?i)(\d+)\s*(?:Sec|Section)\s*` + regexp.QuoteMeta(section) + `\s*\((\d+)-(\d+)\)`)
		},
	},
	{
		name:      "room_section_for",
		sectioned: true,
		pattern: func(section string) *regexp.Regexp {
			return regexp.MustCompile(`(?i)Room\s+(\d+)\s*(?:Sec|Section)\s*` + regexp.QuoteMeta(section) + `\s*for\s+(\d+)-(\d+)`)
		},
	},
	{name: "range", pattern: fixed(roomRange)},
	{name: "range_anchored", pattern: fixed(roomRangeAnchored)},
	{name: "room_for", pattern: fixed(roomForRange)},
	{name: "multi_range", all: true, pattern: fixed(roomRange)},
}

// RoomQuery identifies whose room is being resolved.
type RoomQuery struct {
	Course    string
	StudentID string
	Section   string
}

// ResolveRoom picks the room a student sits in for a course. It never fails:
// when nothing more specific applies it falls back to the first candidate's
// room number, or to one of the Room* display values.
func ResolveRoom(records []Record, q RoomQuery, logger *slog.Logger) string {
	log := logger
	if log == nil {
		log = slog.Default()
	}

	idText := strings.TrimSpace(q.StudentID)
	if idText == "" {
		return RoomMissingID
	}
	if !studentIDDigits.MatchString(idText) {
		return RoomInvalidID
	}
	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		return RoomInvalidID
	}
	section := strings.TrimSpace(q.Section)

	if section != "" {
		for _, r := range records {
			if r.SameCourse(q.Course) && r.HasSection() && strings.EqualFold(r.Section, section) {
				log.Debug("room by course and section", "course", q.Course, "section", section)
				return roomNumber(r.Room)
			}
		}
	}

	var candidates []Record
	for _, r := range records {
		if r.SameCourse(q.Course) {
			candidates = append(candidates, r)
		}
	}
	switch len(candidates) {
	case 0:
		return RoomUnknown
	case 1:
		return roomNumber(candidates[0].Room)
	}

	for _, c := range candidates {
		for _, rule := range rangeRules {
			if rule.sectioned && section == "" {
				continue
			}
			if room, ok := matchRange(rule, section, c.Room, id); ok {
				log.Debug("room by id range", "course", q.Course, "rule", rule.name, "room", room)
				return room
			}
		}
	}

	if section != "" {
		lower := strings.ToLower(section)
		for _, c := range candidates {
			info := strings.ToLower(c.Room)
			if strings.Contains(info, lower) ||
				strings.Contains(info, "sec "+lower) ||
				strings.Contains(info, "section "+lower) {
				if n := firstDigits(c.Room); n != "" {
					log.Debug("room by section mention", "course", q.Course, "section", section)
					return n
				}
			}
		}
	}

	return roomNumber(candidates[0].Room)
}

// matchRange applies one rule to a room descriptor and returns the room whose
// inclusive ID range contains id.
func matchRange(rule rangeRule, section, room string, id int64) (string, bool) {
	re := rule.pattern(section)
	var matches [][]string
	if rule.all {
		matches = re.FindAllStringSubmatch(room, -1)
	} else if m := re.FindStringSubmatch(room); m != nil {
		matches = [][]string{m}
	}
	for _, m := range matches {
		lo, errLo := strconv.ParseInt(m[2], 10, 64)
		hi, errHi := strconv.ParseInt(m[3], 10, 64)
		if errLo != nil || errHi != nil {
			continue
		}
		if id >= lo && id <= hi {
			return m[1], true
		}
	}
	return "", false
}

// roomNumber returns the first digit run of a room descriptor, or the
// descriptor itself when it has no digits.
func roomNumber(room string) string {
	if n := firstDigits(room); n != "" {
		return n
	}
	return room
}
