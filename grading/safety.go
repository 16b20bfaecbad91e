package grading

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// piiKeywords in a refusal reason show the checker caught actual PII rather
// than refusing at random.
var piiKeywords = []string{"ssn", "credit card", "social security", "aadhaar", "passport"}

// reasonQualityWords mark a reason as grounded in the medical content.
var reasonQualityWords = []string{"medical", "health", "clinical", "safe"}

// GradeSafetyCheck scores a safety verdict. With ground truth available a
// correct verdict earns 0.7; without it the heuristic favors safe verdicts
// and unsafe verdicts that name the PII they found. Reason quality adds up
// to 0.3.
func GradeSafetyCheck(output *schema.SafetyOutput, expectedSafe *bool) float64 {
	if output == nil {
		return 0.0
	}

	total := 0.0
	isSafe := output.Safe()
	reason := output.Reason
	lowerReason := strings.ToLower(reason)

	if expectedSafe != nil {
		if isSafe == *expectedSafe {
			total += 0.70
		}
	} else {
		switch {
		case isSafe:
			total += 0.50
		case containsAny(lowerReason, piiKeywords):
			total += 0.50
		default:
			total += 0.20
		}
	}

	if reason != "" {
		length := utf8.RuneCountInString(reason)
		if length >= 20 {
			total += 0.15
		}
		if length >= 50 {
			total += 0.10
		}
		if containsAny(lowerReason, reasonQualityWords) {
			total += 0.05
		}
	}

	return math.Min(1.0, total)
}
