// Package dataset provides the training corpora for the discharge pipeline
// agents plus loaders for custom document sets.
package dataset

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// Sample is one training task. Exactly which text field is populated depends
// on the agent: discharge notes use DocumentText, education topics use
// Context, and safety checks use Text.
type Sample struct {
	ID           string `yaml:"id"`
	DocumentText string `yaml:"document_text"`
	Context      string `yaml:"context"`
	Text         string `yaml:"text"`

	// ExpectedSafe is the ground-truth verdict for safety samples. Nil means
	// no ground truth, which switches the grader to its heuristic.
	ExpectedSafe *bool `yaml:"expected_safe"`

	// ExpectedOutput is reserved for future ground-truth discharge packets.
	ExpectedOutput *schema.DischargeOutput `yaml:"expected_output"`
}

// Input returns the sample text an agent should process, whichever field
// carries it.
func (s Sample) Input() string {
	switch {
	case s.DocumentText != "":
		return s.DocumentText
	case s.Context != "":
		return s.Context
	default:
		return s.Text
	}
}

// validate is the shared validator instance used across the package.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterStructValidation(sampleStructLevel, Sample{})
}

// sampleStructLevel requires at least one populated input field.
func sampleStructLevel(sl validator.StructLevel) {
	sample, ok := sl.Current().Interface().(Sample)
	if !ok {
		return
	}
	if sample.DocumentText == "" && sample.Context == "" && sample.Text == "" {
		sl.ReportError(sample.DocumentText, "document_text", "DocumentText", "requiredinput", "")
	}
}

// Validate checks that the sample carries usable input.
func (s Sample) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid sample %q: %w", s.ID, err)
	}
	return nil
}

// Split divides samples into train and validation sets at the given ratio.
// Degenerate ratios still yield non-empty sets: an empty train side gets the
// first sample, an empty validation side gets the last.
func Split(samples []Sample, trainRatio float64) (train, val []Sample) {
	if len(samples) == 0 {
		return nil, nil
	}
	idx := int(float64(len(samples)) * trainRatio)
	if idx < 0 {
		idx = 0
	}
	if idx > len(samples) {
		idx = len(samples)
	}
	train = samples[:idx]
	val = samples[idx:]
	if len(train) == 0 {
		train = samples[:1]
	}
	if len(val) == 0 {
		val = samples[len(samples)-1:]
	}
	return train, val
}

// LoadDischarge returns the built-in discharge notes split for training.
func LoadDischarge(trainRatio float64) (train, val []Sample) {
	return Split(DischargeSamples(), trainRatio)
}

// LoadEducation returns the built-in education topics split for training.
func LoadEducation(trainRatio float64) (train, val []Sample) {
	return Split(EducationSamples(), trainRatio)
}

// LoadSafety returns the built-in safety texts split for training.
func LoadSafety(trainRatio float64) (train, val []Sample) {
	return Split(SafetySamples(), trainRatio)
}
