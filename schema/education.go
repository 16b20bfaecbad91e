package schema

// EducationOutput is the patient-education payload: video search queries to
// run and recovery tips to show alongside the results.
type EducationOutput struct {
	SearchQueries []string `json:"search_queries"`
	RecoveryTips  []string `json:"recovery_tips"`
}
