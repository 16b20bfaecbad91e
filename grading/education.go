package grading

import (
	"math"
	"strings"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// queryActionWords mark a search query as specific enough to surface useful
// recovery videos.
var queryActionWords = []string{
	"exercise", "diet", "recovery", "tips", "how to",
	"after", "before", "during", "phase", "steps",
}

// tipActionWords mark a recovery tip as actionable.
var tipActionWords = []string{"do", "avoid", "take", "eat", "drink", "rest", "walk", "call"}

// GradePatientEducation scores an education payload. Query count and
// specificity carry up to 0.6, tip count and actionability up to 0.4. The
// context string is reserved for future relevance checks and does not affect
// the score.
func GradePatientEducation(output *schema.EducationOutput, context string) float64 {
	if output == nil {
		return 0.0
	}

	total := 0.0

	if queries := output.SearchQueries; len(queries) > 0 {
		switch {
		case len(queries) >= 3 && len(queries) <= 5:
			total += 0.20
		case len(queries) >= 1 && len(queries) <= 2:
			total += 0.10
		default:
			total += 0.05
		}

		specific := 0
		for _, query := range queries {
			if containsAny(strings.ToLower(query), queryActionWords) {
				specific++
			}
		}
		total += math.Min(0.40, float64(specific)/float64(len(queries))*0.40)
	}

	if tips := output.RecoveryTips; len(tips) > 0 {
		switch {
		case len(tips) >= 3:
			total += 0.20
		case len(tips) >= 1:
			total += 0.10
		}

		actionable := 0
		for _, tip := range tips {
			if containsAny(strings.ToLower(tip), tipActionWords) {
				actionable++
			}
		}
		total += math.Min(0.20, float64(actionable)/float64(len(tips))*0.20)
	}

	return math.Min(1.0, total)
}
