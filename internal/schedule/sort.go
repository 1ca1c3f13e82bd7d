package schedule

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey is the record field used for ordering.
type SortKey string

const (
	SortByCourse SortKey = "course"
	SortByDate   SortKey = "date"
	SortByTime   SortKey = "time"
	SortByRoom   SortKey = "room"
)

// SortOrder is the ordering direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByCourse, SortByDate, SortByTime, SortByRoom:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want course, date, time or room)", s)
	}
}

// ParseSortOrder validates a sort direction.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case Ascending, Descending:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want asc or desc)", s)
	}
}

// Sort orders records in place by key. Records with equal keys keep their
// relative order in both directions.
func Sort(records []Record, key SortKey, order SortOrder) {
	cmp := comparator(key)
	sort.SliceStable(records, func(i, j int) bool {
		c := cmp(records[i], records[j])
		if order == Descending {
			return c > 0
		}
		return c < 0
	})
}

func comparator(key SortKey) func(a, b Record) int {
	switch key {
	case SortByDate:
		return func(a, b Record) int {
			return ParseDate(a.Date).Compare(ParseDate(b.Date))
		}
	case SortByTime:
		return func(a, b Record) int {
			return TimeMinutes(a.Time) - TimeMinutes(b.Time)
		}
	case SortByRoom:
		return func(a, b Record) int {
			return strings.Compare(a.Room, b.Room)
		}
	default:
		return func(a, b Record) int {
			return strings.Compare(a.Course, b.Course)
		}
	}
}
