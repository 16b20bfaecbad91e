// Package schema defines the structured outputs produced by the discharge
// pipeline agents. The types tolerate the shape drift that comes with
// LLM-generated JSON.
package schema

// Status marks whether an agent invocation produced usable output.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Bool returns a pointer to v. Used for optional boolean fields.
func Bool(v bool) *bool {
	return &v
}
