package heuristics

import (
	"regexp"
	"strings"
)

// typeRules is ordered; the first matching rule wins.
var typeRules = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"ISCC", regexp.MustCompile(`(?i)\bISCC\b`)},
	{"RSB", regexp.MustCompile(`(?i)\bRSB\b`)},
	{"CORSIA", regexp.MustCompile(`(?i)\bCORSIA\b`)},
}

// issuingBodyPattern matches the recognized scheme names and acronyms.
var issuingBodyPattern = regexp.MustCompile(`(?i)(International Sustainability (?:&|and) Carbon Certification|Roundtable on Sustainable Biomaterials|Carbon Offsetting and Reduction Scheme for International Aviation|ISCC|RSB|CORSIA)`)

// ClassifyType tests the text against the ordered keyword table and returns
// the first matching type tag, or fallback when nothing matches.
func ClassifyType(text, fallback string) string {
	for _, rule := range typeRules {
		if rule.pattern.MatchString(text) {
			return rule.tag
		}
	}
	return fallback
}

// DetectIssuingBody returns the first recognized scheme name or acronym,
// trimmed but otherwise verbatim. No canonicalization is applied.
func DetectIssuingBody(text string) (string, bool) {
	m := issuingBodyPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}
