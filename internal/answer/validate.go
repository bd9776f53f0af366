// Package answer checks a learner's free-text input against a
// question's accepted answers.
//
// Some catalog questions accept "no word here" as the right answer;
// those list "", "-" or "--" among their accepted answers, and learners
// may type any of the dash forms or the phrase "no preposition".
package answer

import "strings"

// emptyForms are the inputs treated as an explicit empty answer.
var emptyForms = map[string]bool{
	"":               true,
	"-":              true,
	"--":             true,
	"no preposition": true,
}

// AllowsEmpty reports whether the accepted-answer set includes one of
// the catalog's no-word conventions.
func AllowsEmpty(accepted []string) bool {
	for _, a := range accepted {
		switch a {
		case "", "-", "--":
			return true
		}
	}
	return false
}

// Validate reports whether input matches one of the accepted answers.
// Input is trimmed and lowercased; matching is exact set membership,
// never fuzzy.
func Validate(input string, accepted []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(input))

	if AllowsEmpty(accepted) && emptyForms[normalized] {
		return true
	}

	for _, a := range accepted {
		if strings.EqualFold(normalized, a) {
			return true
		}
	}
	return false
}
