package classify

import (
	"regexp"
	"strings"
)

// Keyword gate is intentionally coarse: any single hit qualifies, no scoring.
// False positives are fine; structuring downstream can still reject them.
var opportunityKeywords = []string{
	"internship", "fellowship", "research", "conference",
	"workshop", "grant", "scholarship", "competition",
	"hackathon", "apply", "applications open", "summit",
	"event", "program", "deadline", "apply now",
	"call for applications",
}

func IsOpportunity(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range opportunityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type categoryRule struct {
	category string
	any      []string
}

// Order matters: earlier rules shadow later ones when several keywords appear.
var categoryRules = []categoryRule{
	{"internship", []string{"internship"}},
	{"fellowship", []string{"fellowship"}},
	{"research", []string{"research"}},
	{"scholarship", []string{"scholarship"}},
	{"conference", []string{"conference"}},
	{"competition", []string{"competition"}},
	{"event", []string{"event", "workshop"}},
}

func Category(text string) string {
	lower := strings.ToLower(text)
	for _, r := range categoryRules {
		for _, needle := range r.any {
			if strings.Contains(lower, needle) {
				return r.category
			}
		}
	}
	return "general"
}

var deadlineRe = regexp.MustCompile(
	`(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}`)

// ExtractDeadline returns the first "<Month> <day>" match, or "" when the text
// has none. No year inference, no check that the date is in the future.
func ExtractDeadline(text string) string {
	return deadlineRe.FindString(text)
}
