package optimizer

import (
	"fmt"
	"sort"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/dataset"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/internal/cache"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/llm"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/prompts"
	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/schema"
)

// Agent bundles everything needed to train one prompt: the baseline
// template, its input placeholder, the scoring criteria fed to the gradient
// generator, a rollout constructor, and a dataset loader.
type Agent struct {
	Name        string
	Placeholder string
	Baseline    string

	// Criteria documents the grader's reward budget for the gradient
	// generator, so critiques target the scored dimensions.
	Criteria string

	// NewRollout builds the agent's rollout. The guard cache is only used
	// by the workflow agent; others ignore it.
	NewRollout func(model llm.LLM, guard *cache.Cache[*schema.SafetyOutput]) RolloutFunc

	// Load returns the builtin train/validation split for this agent.
	Load func(ratio float64) (train, val []dataset.Sample)
}

const (
	dischargeCriteria = `- Readability (0-0.3): Output should be at 6th-8th grade reading level
- Completeness (0-0.4): All required fields present and detailed
- Safety (0-0.3): Danger signs should be specific and comprehensive`

	educationCriteria = `- Query quality (0-0.6): 3-5 specific, condition-focused video search queries
- Tip quality (0-0.4): At least 3 actionable recovery tips using do/avoid/take guidance`

	workflowCriteria = `- Safety gate (20% of final score): the document must pass the PII guardrail before simplification
- Readability (0-0.3): Output should be at 6th-8th grade reading level
- Completeness (0-0.4): All required fields present and detailed
- Safety (0-0.3): Danger signs should be specific and comprehensive`
)

var agentRegistry = map[string]Agent{
	"discharge": {
		Name:        "discharge",
		Placeholder: prompts.PlaceholderInputText,
		Baseline:    prompts.DischargeSimplifier,
		Criteria:    dischargeCriteria,
		NewRollout: func(model llm.LLM, _ *cache.Cache[*schema.SafetyOutput]) RolloutFunc {
			return DischargeRollout(model)
		},
		Load: dataset.LoadDischarge,
	},
	"education": {
		Name:        "education",
		Placeholder: prompts.PlaceholderContext,
		Baseline:    prompts.PatientEducation,
		Criteria:    educationCriteria,
		NewRollout: func(model llm.LLM, _ *cache.Cache[*schema.SafetyOutput]) RolloutFunc {
			return EducationRollout(model)
		},
		Load: dataset.LoadEducation,
	},
	"workflow": {
		Name:        "workflow",
		Placeholder: prompts.PlaceholderInputText,
		Baseline:    prompts.DischargeSimplifier,
		Criteria:    workflowCriteria,
		NewRollout:  WorkflowRollout,
		Load:        dataset.LoadDischarge,
	},
}

// AgentByName looks up a trainable agent.
func AgentByName(name string) (Agent, error) {
	agent, ok := agentRegistry[name]
	if !ok {
		return Agent{}, fmt.Errorf("unknown agent %q (known: %v)", name, Agents())
	}
	return agent, nil
}

// Agents returns the registered agent names in sorted order.
func Agents() []string {
	names := make([]string, 0, len(agentRegistry))
	for name := range agentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
