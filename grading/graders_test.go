package grading

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// gradeBandSummary reads at roughly 6.7 on the Flesch-Kincaid scale, inside
// the top-scoring 6-8 band.
const gradeBandSummary = "after doctor window better under open rest walk milk hand foot arm leg."

func fullDischargeOutput() *schema.DischargeOutput {
	return &schema.DischargeOutput{
		Status:            schema.StatusSuccess,
		SimplifiedSummary: gradeBandSummary,
		ActionPlan: []schema.ActionPlanItem{
			{Day: "Day 1", Tasks: []string{"Rest"}, Medications: []string{"Ibuprofen"}},
		},
		DangerSigns: []schema.DangerSign{
			{Sign: "Fever over 101F"},
			{Sign: "Severe pain at the wound"},
			{Sign: "Trouble breathing"},
		},
		MedicationList:   []string{"Ibuprofen 400mg"},
		FollowUpSchedule: []schema.FollowUpAppointment{{Specialist: "Surgeon", When: "1 week"}},
		LifestyleChanges: []string{"Walk daily"},
		Citations:        []string{"discharge note"},
	}
}

func TestGradeDischargeSimplification(t *testing.T) {
	t.Run("NilScoresZero", func(t *testing.T) {
		assert.Zero(t, GradeDischargeSimplification(nil, nil))
	})

	t.Run("FailedScoresZero", func(t *testing.T) {
		out := fullDischargeOutput()
		out.Status = schema.StatusFailed
		assert.Zero(t, GradeDischargeSimplification(out, nil))
	})

	t.Run("PerfectOutputScoresOne", func(t *testing.T) {
		// 0.30 readability + 0.40 completeness + 0.30 safety.
		assert.InDelta(t, 1.0, GradeDischargeSimplification(fullDischargeOutput(), nil), 1e-9)
	})

	t.Run("ThreeOfFiveFieldsScoreExactly", func(t *testing.T) {
		out := &schema.DischargeOutput{
			Status:           schema.StatusSuccess,
			ActionPlan:       []schema.ActionPlanItem{{Day: "Day 1"}},
			MedicationList:   []string{"Ibuprofen"},
			FollowUpSchedule: []schema.FollowUpAppointment{{Specialist: "GP"}},
		}
		// Empty summary skips readability, no signs means no safety points.
		assert.InDelta(t, 3.0/5.0*0.40, GradeDischargeSimplification(out, nil), 1e-9)
	})

	t.Run("SpecificSignBonusIsCapped", func(t *testing.T) {
		out := &schema.DischargeOutput{
			Status: schema.StatusSuccess,
			DangerSigns: []schema.DangerSign{
				{Sign: "Fever over 101F"},
				{Sign: "Severe pain"},
				{Sign: "Trouble breathing"},
			},
		}
		// Safety stays at its 0.30 cap despite the bonus; danger signs also
		// count as one of five completeness fields.
		assert.InDelta(t, 0.30+1.0/5.0*0.40, GradeDischargeSimplification(out, nil), 1e-9)
	})

	t.Run("TwoSpecificSignsEarnBonus", func(t *testing.T) {
		out := &schema.DischargeOutput{
			Status: schema.StatusSuccess,
			DangerSigns: []schema.DangerSign{
				{Sign: "Fever over 101F"},
				{Sign: "Call your doctor right away"},
			},
		}
		// Two signs earn 0.20 plus the 0.05 specificity bonus.
		assert.InDelta(t, 0.25+1.0/5.0*0.40, GradeDischargeSimplification(out, nil), 1e-9)
	})

	t.Run("VagueSignsEarnNoBonus", func(t *testing.T) {
		out := &schema.DischargeOutput{
			Status: schema.StatusSuccess,
			DangerSigns: []schema.DangerSign{
				{Sign: "Feeling unwell"},
				{Sign: "Something seems wrong"},
			},
		}
		assert.InDelta(t, 0.20+1.0/5.0*0.40, GradeDischargeSimplification(out, nil), 1e-9)
	})

	t.Run("ReadabilityBands", func(t *testing.T) {
		// Single clipped word grades 0, outside every band.
		out := &schema.DischargeOutput{Status: schema.StatusSuccess, SimplifiedSummary: "Stop."}
		assert.InDelta(t, 0.05+1.0/5.0*0.40, GradeDischargeSimplification(out, nil), 1e-9)

		out.SimplifiedSummary = gradeBandSummary
		assert.InDelta(t, 0.30+1.0/5.0*0.40, GradeDischargeSimplification(out, nil), 1e-9)
	})
}

func TestCheckCompleteness(t *testing.T) {
	report := CheckCompleteness(fullDischargeOutput())
	assert.True(t, report.HasSummary)
	assert.True(t, report.HasActionPlan)
	assert.True(t, report.HasDangerSigns)
	assert.True(t, report.HasMedications)
	assert.True(t, report.HasFollowUp)
	assert.True(t, report.HasCitations)
	assert.Equal(t, 5, report.RequiredCount())

	empty := CheckCompleteness(&schema.DischargeOutput{})
	assert.Equal(t, 0, empty.RequiredCount())

	// Citations never count toward the required five.
	citedOnly := CheckCompleteness(&schema.DischargeOutput{Citations: []string{"note"}})
	assert.True(t, citedOnly.HasCitations)
	assert.Equal(t, 0, citedOnly.RequiredCount())
}

func TestGradePatientEducation(t *testing.T) {
	t.Run("NilScoresZero", func(t *testing.T) {
		assert.Zero(t, GradePatientEducation(nil, "Heart Failure management"))
	})

	t.Run("EmptyPayloadScoresZero", func(t *testing.T) {
		out := &schema.EducationOutput{SearchQueries: []string{}, RecoveryTips: []string{}}
		assert.Zero(t, GradePatientEducation(out, ""))
	})

	t.Run("IdealPayloadScoresOne", func(t *testing.T) {
		out := &schema.EducationOutput{
			SearchQueries: []string{
				"knee replacement recovery exercises",
				"diet after knee surgery",
				"how to walk with a walker",
				"knee surgery recovery phase two",
			},
			RecoveryTips: []string{
				"Take your medication with food",
				"Avoid stairs for two weeks",
				"Walk a little further each day",
			},
		}
		assert.InDelta(t, 1.0, GradePatientEducation(out, "Total Knee Replacement post-surgery"), 1e-9)
	})

	t.Run("TooManyVagueQueries", func(t *testing.T) {
		out := &schema.EducationOutput{
			SearchQueries: []string{
				"knee videos", "heart info", "lungs", "sugar levels",
				"blood pressure", "wound info", "doctor visit",
			},
		}
		// Seven queries fall outside both count bands and none are specific.
		assert.InDelta(t, 0.05, GradePatientEducation(out, ""), 1e-9)
	})

	t.Run("SingleVagueTip", func(t *testing.T) {
		out := &schema.EducationOutput{RecoveryTips: []string{"sleep nightly"}}
		assert.InDelta(t, 0.10, GradePatientEducation(out, ""), 1e-9)
	})

	t.Run("PartialSpecificity", func(t *testing.T) {
		out := &schema.EducationOutput{
			SearchQueries: []string{"recovery exercises", "knee videos"},
		}
		// Two queries, one specific: 0.10 + 0.5*0.40.
		assert.InDelta(t, 0.10+0.20, GradePatientEducation(out, ""), 1e-9)
	})
}

func TestGradeSafetyCheck(t *testing.T) {
	t.Run("NilScoresZero", func(t *testing.T) {
		assert.Zero(t, GradeSafetyCheck(nil, schema.Bool(true)))
	})

	t.Run("CorrectVerdictWithGroundTruth", func(t *testing.T) {
		out := &schema.SafetyOutput{IsSafe: schema.Bool(true)}
		assert.InDelta(t, 0.70, GradeSafetyCheck(out, schema.Bool(true)), 1e-9)
	})

	t.Run("WrongVerdictWithGroundTruth", func(t *testing.T) {
		out := &schema.SafetyOutput{IsSafe: schema.Bool(true)}
		assert.Zero(t, GradeSafetyCheck(out, schema.Bool(false)))
	})

	t.Run("MissingVerdictDefaultsToSafe", func(t *testing.T) {
		out := &schema.SafetyOutput{}
		assert.InDelta(t, 0.70, GradeSafetyCheck(out, schema.Bool(true)), 1e-9)
		assert.Zero(t, GradeSafetyCheck(out, schema.Bool(false)))
	})

	t.Run("HeuristicFavorsSafe", func(t *testing.T) {
		out := &schema.SafetyOutput{IsSafe: schema.Bool(true)}
		assert.InDelta(t, 0.50, GradeSafetyCheck(out, nil), 1e-9)
	})

	t.Run("HeuristicUnsafeNeedsPIIEvidence", func(t *testing.T) {
		grounded := &schema.SafetyOutput{IsSafe: schema.Bool(false), Reason: "found ssn in document"}
		// 0.50 verdict + 0.15 for a reason of at least 20 characters.
		assert.InDelta(t, 0.65, GradeSafetyCheck(grounded, nil), 1e-9)

		vague := &schema.SafetyOutput{IsSafe: schema.Bool(false), Reason: "bad"}
		assert.InDelta(t, 0.20, GradeSafetyCheck(vague, nil), 1e-9)
	})

	t.Run("ReasonBonusesStackToOne", func(t *testing.T) {
		out := &schema.SafetyOutput{
			IsSafe: schema.Bool(true),
			Reason: "This document contains protected medical information about the patient.",
		}
		// 0.70 + 0.15 + 0.10 + 0.05 lands exactly on the 1.0 cap.
		assert.InDelta(t, 1.0, GradeSafetyCheck(out, schema.Bool(true)), 1e-9)
	})

	t.Run("KeywordMatchIsSubstring", func(t *testing.T) {
		out := &schema.SafetyOutput{IsSafe: schema.Bool(true), Reason: "unsafe"}
		// "unsafe" contains "safe", earning the keyword bonus.
		assert.InDelta(t, 0.70+0.05, GradeSafetyCheck(out, schema.Bool(true)), 1e-9)
	})
}

func TestGradersStayBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomWords := func(n int) string {
		words := make([]byte, 0, n*6)
		for i := 0; i < n; i++ {
			if i > 0 {
				words = append(words, ' ')
			}
			wordLen := 1 + rng.Intn(10)
			for j := 0; j < wordLen; j++ {
				words = append(words, byte('a'+rng.Intn(26)))
			}
			if rng.Intn(4) == 0 {
				words = append(words, '.')
			}
		}
		return string(words)
	}

	randomList := func(max int) []string {
		list := make([]string, rng.Intn(max+1))
		for i := range list {
			list[i] = randomWords(1 + rng.Intn(8))
		}
		return list
	}

	for i := 0; i < 250; i++ {
		discharge := &schema.DischargeOutput{
			Status:            schema.StatusSuccess,
			SimplifiedSummary: randomWords(rng.Intn(60)),
			MedicationList:    randomList(6),
			LifestyleChanges:  randomList(4),
			Citations:         randomList(3),
		}
		signCount := rng.Intn(7)
		for j := 0; j < signCount; j++ {
			discharge.DangerSigns = append(discharge.DangerSigns, schema.DangerSign{Sign: randomWords(1 + rng.Intn(5))})
		}
		planCount := rng.Intn(4)
		for j := 0; j < planCount; j++ {
			discharge.ActionPlan = append(discharge.ActionPlan, schema.ActionPlanItem{Day: "Day", Tasks: randomList(3)})
		}
		score := GradeDischargeSimplification(discharge, nil)
		assert.GreaterOrEqual(t, score, 0.0, "case %d", i)
		assert.LessOrEqual(t, score, 1.0, "case %d", i)

		education := &schema.EducationOutput{
			SearchQueries: randomList(9),
			RecoveryTips:  randomList(9),
		}
		score = GradePatientEducation(education, randomWords(4))
		assert.GreaterOrEqual(t, score, 0.0, "case %d", i)
		assert.LessOrEqual(t, score, 1.0, "case %d", i)

		var expected *bool
		if rng.Intn(2) == 0 {
			expected = schema.Bool(rng.Intn(2) == 0)
		}
		safety := &schema.SafetyOutput{Reason: randomWords(rng.Intn(20))}
		if rng.Intn(3) > 0 {
			safety.IsSafe = schema.Bool(rng.Intn(2) == 0)
		}
		score = GradeSafetyCheck(safety, expected)
		assert.GreaterOrEqual(t, score, 0.0, "case %d", i)
		assert.LessOrEqual(t, score, 1.0, "case %d", i)
	}
}

func BenchmarkGradeDischargeSimplification(b *testing.B) {
	out := fullDischargeOutput()
	for i := 0; i < b.N; i++ {
		_ = GradeDischargeSimplification(out, nil)
	}
}

func ExampleFleschKincaidGrade() {
	grade := FleschKincaidGrade("You had surgery on your knee. Rest at home. Take your pills with food.")
	fmt.Printf("grade band: %t\n", grade >= 0 && grade <= 12)
	// Output: grade band: true
}
