package schema

// SafetyOutput is the verdict from the safety checker. IsSafe is a pointer
// because a missing field means the checker did not flag anything, which is
// treated as safe.
type SafetyOutput struct {
	IsSafe *bool  `json:"is_safe"`
	Reason string `json:"reason"`
}

// Safe reports the verdict, defaulting to true when the field is absent.
func (o *SafetyOutput) Safe() bool {
	if o == nil || o.IsSafe == nil {
		return true
	}
	return *o.IsSafe
}
