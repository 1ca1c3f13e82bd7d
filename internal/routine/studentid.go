package routine

import (
	"regexp"
	"strings"
)

// idPatterns are tried in order against each fragment and then against the
// flat text. Submatch 1 is the ID.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Student\s*ID[\s:]*(\d{9,11})`),
	regexp.MustCompile(`(?i)ID[\s:]*(\d{9,11})`),
	regexp.MustCompile(`\b(\d{9,11})\b`),
	regexp.MustCompile(`(?i)Student[\s:]*(\d{9,11})`),
	regexp.MustCompile(`(?i)Matric[a-z]*[\s:]*(\d{9,11})`),
}

var (
	idLabel = regexp.MustCompile(`(?i)student\s*id|^\s*id\s*$`)
	bareID  = regexp.MustCompile(`^\d{9,11}$`)
)

// idLookahead is how many fragments after an ID label are checked for a
// bare ID.
const idLookahead = 4

// FindStudentID locates the student ID printed in a routine. Fragments are
// searched first; the flat text is a fallback and only accepts IDs with a
// leading zero.
func FindStudentID(t *Text) (string, bool) {
	if t == nil {
		return "", false
	}

	frags := t.Fragments
	for i, frag := range frags {
		if idLabel.MatchString(frag) {
			end := min(i+1+idLookahead, len(frags))
			for j := i + 1; j < end; j++ {
				if bareID.MatchString(frags[j]) {
					return frags[j], true
				}
			}
		}
		for _, re := range idPatterns {
			if m := re.FindStringSubmatch(frag); m != nil {
				return m[1], true
			}
		}
	}

	for _, re := range idPatterns {
		m := re.FindStringSubmatch(t.Flat)
		if m == nil {
			continue
		}
		if strings.HasPrefix(m[1], "0") && len(m[1]) >= 9 {
			return m[1], true
		}
	}
	return "", false
}
