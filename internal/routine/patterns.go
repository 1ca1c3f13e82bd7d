package routine

import (
	"regexp"
	"strings"
)

// coursePatterns recognize a course code; submatch 1 is the code. They are
// tried in order and the first one that matches wins.
var coursePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z]{2,4}\s*\d{3,4})\b`),
	regexp.MustCompile(`\b([A-Z]{2,4}-\d{3,4})\b`),
	regexp.MustCompile(`\b([A-Z]{2,4}_\d{3,4})\b`),
	regexp.MustCompile(`(?i)Course[:\s]*([A-Z]{2,4}\s*\d{3,4})`),
}

// sectionRule recognizes a section label; the last submatch is the label.
type sectionRule struct {
	re *regexp.Regexp
	// keyed rules capture the separator after the keyword in submatch 1.
	// A label glued to the keyword ("SecA", "Sec1") must be one capital
	// letter or digits, which keeps "Second" and "SECTION" out.
	keyed bool
}

var gluedLabel = regexp.MustCompile(`^(?:[A-Z]|[0-9]+)$`)

// "Section" is listed before "Sec" so the longer keyword is consumed whole.
var sectionRules = []sectionRule{
	{re: regexp.MustCompile(`(?i)\b(?:Section|Sect|Sec)([\s:.\-]*)([A-Z0-9]+)\b`), keyed: true},
	{re: regexp.MustCompile(`(?i)\bSection[\s:]*([A-Z0-9]+)\b`)},
	{re: regexp.MustCompile(`\b([A-Z])\s*$`)},
	{re: regexp.MustCompile(`(?i)\bGrp[\s:.\-]*([A-Z0-9]+)\b`)},
}

var codeSeparators = strings.NewReplacer(" ", "", "\t", "", "-", "", "_", "")

// NormalizeCode strips spaces, hyphens and underscores and uppercases.
func NormalizeCode(s string) string {
	return strings.ToUpper(codeSeparators.Replace(s))
}

// findCourse returns the code found by the first matching course pattern.
func findCourse(s string) (string, bool) {
	for _, re := range coursePatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return NormalizeCode(m[1]), true
		}
	}
	return "", false
}

// findAllCourses returns every code found by every course pattern, in
// pattern order.
func findAllCourses(s string) []string {
	var codes []string
	for _, re := range coursePatterns {
		for _, m := range re.FindAllStringSubmatch(s, -1) {
			codes = append(codes, NormalizeCode(m[1]))
		}
	}
	return codes
}

// wholeCourse returns the code when some course pattern spans all of s.
func wholeCourse(s string) (string, bool) {
	for _, re := range coursePatterns {
		loc := re.FindStringSubmatchIndex(s)
		if loc != nil && loc[0] == 0 && loc[1] == len(s) {
			return NormalizeCode(s[loc[2]:loc[3]]), true
		}
	}
	return "", false
}

// findSection returns the uppercased label found by the first matching
// section pattern.
func findSection(s string) (string, bool) {
	for _, rule := range sectionRules {
		for _, m := range rule.re.FindAllStringSubmatch(s, -1) {
			label := m[len(m)-1]
			if rule.keyed && m[1] == "" && !gluedLabel.MatchString(label) {
				continue
			}
			return strings.ToUpper(label), true
		}
	}
	return "", false
}
