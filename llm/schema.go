package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/utils"
)

// GenerateJSONSchema reflects a JSON schema from a Go value.
func GenerateJSONSchema(v any) ([]byte, error) {
	reflector := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(v)
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// promptWithSchema appends the reflected schema to the prompt for providers
// without a native JSON response mode. On reflection failure the prompt is
// returned unchanged.
func promptWithSchema(prompt string, schema any, logger utils.Logger) string {
	data, err := GenerateJSONSchema(schema)
	if err != nil {
		logger.Warn("failed to generate JSON schema", "error", err)
		return prompt
	}
	return fmt.Sprintf(
		"%s\n\nPlease provide your response as a single JSON object matching this schema:\n%s",
		prompt, string(data))
}
