package grading

import (
	"math"
	"strings"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// Weights of the discharge reward components.
const (
	readabilityWeight  = 0.30
	completenessWeight = 0.40
	safetyWeight       = 0.30
)

// specificSignWords mark a danger sign as actionable even without numbers.
var specificSignWords = []string{"fever", "pain", "breathing", "call"}

// CompletenessReport lists which discharge packet fields are populated.
type CompletenessReport struct {
	HasSummary     bool
	HasActionPlan  bool
	HasDangerSigns bool
	HasMedications bool
	HasFollowUp    bool
	HasCitations   bool
}

// RequiredCount returns how many of the five required fields are present.
// Citations are tracked but not required.
func (r CompletenessReport) RequiredCount() int {
	count := 0
	for _, present := range []bool{
		r.HasSummary, r.HasActionPlan, r.HasDangerSigns, r.HasMedications, r.HasFollowUp,
	} {
		if present {
			count++
		}
	}
	return count
}

// CheckCompleteness inspects a discharge packet for required content.
func CheckCompleteness(output *schema.DischargeOutput) CompletenessReport {
	if output == nil {
		return CompletenessReport{}
	}
	return CompletenessReport{
		HasSummary:     output.SimplifiedSummary != "",
		HasActionPlan:  len(output.ActionPlan) > 0,
		HasDangerSigns: len(output.DangerSigns) > 0,
		HasMedications: len(output.MedicationList) > 0,
		HasFollowUp:    len(output.FollowUpSchedule) > 0,
		HasCitations:   len(output.Citations) > 0,
	}
}

// GradeDischargeSimplification scores a simplified discharge packet.
// Readability targets a 6th-8th grade level, completeness counts the
// required fields, and the safety component rewards specific danger signs.
// Failed invocations score zero. The expected packet is reserved for future
// ground-truth comparison and does not affect the score.
func GradeDischargeSimplification(output, expected *schema.DischargeOutput) float64 {
	if output.Failed() {
		return 0.0
	}

	total := 0.0

	if output.SimplifiedSummary != "" {
		grade := FleschKincaidGrade(output.SimplifiedSummary)
		switch {
		case grade >= 6 && grade <= 8:
			total += readabilityWeight
		case grade >= 4 && grade <= 10:
			total += 0.20
		case grade >= 2 && grade <= 12:
			total += 0.10
		default:
			total += 0.05
		}
	}

	report := CheckCompleteness(output)
	total += float64(report.RequiredCount()) / 5.0 * completenessWeight

	safety := 0.0
	switch {
	case len(output.DangerSigns) >= 3:
		safety = 0.30
	case len(output.DangerSigns) >= 1:
		safety = 0.20
	}

	specific := 0
	for _, sign := range output.DangerSigns {
		text := sign.Text()
		if hasDigit(text) || containsAny(strings.ToLower(text), specificSignWords) {
			specific++
		}
	}
	if specific >= 2 {
		safety = math.Min(safetyWeight, safety+0.05)
	}
	total += safety

	return math.Min(1.0, total)
}
