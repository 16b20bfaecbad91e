package schema

import (
	"encoding/json"
)

// ActionPlanItem is one day of the recovery plan.
type ActionPlanItem struct {
	Day         string   `json:"day"`
	Tasks       []string `json:"tasks"`
	Medications []string `json:"medications,omitempty"`
}

// FollowUpAppointment is one scheduled specialist visit.
type FollowUpAppointment struct {
	Specialist string `json:"specialist"`
	When       string `json:"when"`
	Purpose    string `json:"purpose"`
}

// DangerSign is one warning symptom patients must watch for. Models emit
// these either as bare strings or as objects carrying a sign, description,
// or text field, so decoding accepts every shape and never fails.
type DangerSign struct {
	Sign        string `json:"sign,omitempty"`
	Description string `json:"description,omitempty"`
	Freeform    string `json:"text,omitempty"`

	raw json.RawMessage
}

func (d *DangerSign) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Sign = s
		return nil
	}

	type plain DangerSign
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*d = DangerSign(p)
		return nil
	}

	// Unknown shape, kept verbatim so it still counts as a sign.
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Text returns the human-readable content of the sign, whichever field the
// model chose to fill.
func (d DangerSign) Text() string {
	switch {
	case d.Sign != "":
		return d.Sign
	case d.Description != "":
		return d.Description
	case d.Freeform != "":
		return d.Freeform
	default:
		return string(d.raw)
	}
}

// DischargeOutput is the simplified discharge packet produced by the
// simplifier agent. Status and Error are set by the invoker, not the model.
type DischargeOutput struct {
	Status Status `json:"status,omitempty" jsonschema:"-"`
	Error  string `json:"error,omitempty" jsonschema:"-"`

	SimplifiedSummary    string                `json:"simplified_summary"`
	ActionPlan           []ActionPlanItem      `json:"action_plan"`
	DangerSigns          []DangerSign          `json:"danger_signs"`
	MedicationList       []string              `json:"medication_list"`
	WoundCare            string                `json:"wound_care,omitempty"`
	ActivityRestrictions string                `json:"activity_restrictions,omitempty"`
	FollowUpSchedule     []FollowUpAppointment `json:"follow_up_schedule"`
	LifestyleChanges     []string              `json:"lifestyle_changes"`
	Citations            []string              `json:"citations"`
}

// Failed reports whether the invocation behind this output did not complete.
func (o *DischargeOutput) Failed() bool {
	return o == nil || o.Status == StatusFailed
}
