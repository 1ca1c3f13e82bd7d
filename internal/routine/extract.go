package routine

import (
	"log/slog"
	"strings"
)

// ExtractOptions bounds how far each strategy looks for a section after a
// course code.
type ExtractOptions struct {
	// ProximityWindow is the number of fragments searched, counting the
	// fragment holding the code. Blank fragments are dropped during text
	// extraction, so the window spans that many non-blank fragments.
	ProximityWindow int
	// LineLookahead is the number of following non-empty lines searched
	// when the code's own line has no section.
	LineLookahead int
	// TokenWindow is the number of tokens searched after a code token.
	TokenWindow int
	Logger      *slog.Logger
}

// DefaultExtractOptions returns the standard windows, logging to slog.Default.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		ProximityWindow: 10,
		LineLookahead:   4,
		TokenWindow:     4,
		Logger:          slog.Default(),
	}
}

func (o ExtractOptions) withDefaults() ExtractOptions {
	d := DefaultExtractOptions()
	if o.ProximityWindow <= 0 {
		o.ProximityWindow = d.ProximityWindow
	}
	if o.LineLookahead <= 0 {
		o.LineLookahead = d.LineLookahead
	}
	if o.TokenWindow <= 0 {
		o.TokenWindow = d.TokenWindow
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// courseSet is an insertion-ordered set of pairs.
type courseSet struct {
	seen    map[Course]bool
	courses []Course
}

func newCourseSet() *courseSet {
	return &courseSet{seen: make(map[Course]bool)}
}

func (s *courseSet) add(code, section string) {
	c := Course{Code: code, Section: section}
	if s.seen[c] {
		return
	}
	s.seen[c] = true
	s.courses = append(s.courses, c)
}

// strategy is one way of pairing codes with sections.
type strategy struct {
	name string
	run  func(t *Text, opts ExtractOptions, out *courseSet)
}

// strategies run in order; a later one runs only if every earlier one
// found nothing.
var strategies = []strategy{
	{name: "proximity", run: byProximity},
	{name: "lines", run: byLines},
	{name: "tokens", run: byTokens},
}

// ExtractCourses recovers the distinct (code, section) pairs of a routine.
// Codes without a nearby section are dropped.
func ExtractCourses(t *Text, opts ExtractOptions) []Course {
	if t == nil {
		return nil
	}
	opts = opts.withDefaults()

	for _, s := range strategies {
		out := newCourseSet()
		s.run(t, opts, out)
		opts.Logger.Debug("course extraction", "strategy", s.name, "found", len(out.courses))
		if len(out.courses) > 0 {
			return out.courses
		}
	}
	return nil
}

// byProximity pairs each fragment's code with the first section in the
// fragments that follow it.
func byProximity(t *Text, opts ExtractOptions, out *courseSet) {
	frags := t.Fragments
	for i, frag := range frags {
		code, ok := findCourse(frag)
		if !ok {
			continue
		}
		end := min(i+opts.ProximityWindow, len(frags))
		for j := i; j < end; j++ {
			if sec, ok := findSection(frags[j]); ok {
				out.add(code, sec)
				break
			}
		}
	}
}

// byLines pairs every code on a line with a section on the same line or on
// one of the next non-empty lines.
func byLines(t *Text, opts ExtractOptions, out *courseSet) {
	var lines []string
	for _, l := range strings.Split(t.Flat, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	for i, line := range lines {
		codes := findAllCourses(line)
		if len(codes) == 0 {
			continue
		}
		sec, ok := findSection(line)
		for j := i + 1; !ok && j < len(lines) && j <= i+opts.LineLookahead; j++ {
			sec, ok = findSection(lines[j])
		}
		if !ok {
			opts.Logger.Debug("course without section", "codes", codes)
			continue
		}
		for _, code := range codes {
			out.add(code, sec)
		}
	}
}

// byTokens pairs a token that is wholly a course code with the first section
// among the tokens after it.
func byTokens(t *Text, opts ExtractOptions, out *courseSet) {
	tokens := strings.Fields(t.Flat)
	for i, tok := range tokens {
		code, ok := wholeCourse(tok)
		if !ok {
			continue
		}
		for j := i + 1; j < len(tokens) && j <= i+opts.TokenWindow; j++ {
			if sec, ok := findSection(tokens[j]); ok {
				out.add(code, sec)
				break
			}
		}
	}
}
