// Package grading scores agent outputs with deterministic reward functions.
// Every grader returns a value in [0, 1] and never calls out to a model, so
// identical outputs always earn identical rewards.
package grading

import (
	"strings"
	"unicode"
)

// containsAny reports whether s contains at least one of the substrings.
func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// hasDigit reports whether s contains a numeric character.
func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
