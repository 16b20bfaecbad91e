package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JKSANJAY27/Hospital-Discharge-Management-System/prompts"
)

func TestAgents(t *testing.T) {
	assert.Equal(t, []string{"discharge", "education", "workflow"}, Agents())
}

func TestAgentByName(t *testing.T) {
	t.Run("Discharge", func(t *testing.T) {
		agent, err := AgentByName("discharge")
		require.NoError(t, err)
		assert.Equal(t, prompts.PlaceholderInputText, agent.Placeholder)
		assert.Equal(t, prompts.DischargeSimplifier, agent.Baseline)
		assert.Contains(t, agent.Criteria, "Readability (0-0.3)")
		assert.Contains(t, agent.Criteria, "Completeness (0-0.4)")
		assert.NotNil(t, agent.NewRollout)
		assert.NotNil(t, agent.Load)
	})

	t.Run("Education", func(t *testing.T) {
		agent, err := AgentByName("education")
		require.NoError(t, err)
		assert.Equal(t, prompts.PlaceholderContext, agent.Placeholder)
		assert.Equal(t, prompts.PatientEducation, agent.Baseline)
		assert.Contains(t, agent.Criteria, "Query quality (0-0.6)")
	})

	t.Run("Workflow", func(t *testing.T) {
		agent, err := AgentByName("workflow")
		require.NoError(t, err)
		assert.Equal(t, prompts.PlaceholderInputText, agent.Placeholder)
		assert.Equal(t, prompts.DischargeSimplifier, agent.Baseline,
			"the workflow optimizes the discharge prompt behind the fixed guardrail")
		assert.Contains(t, agent.Criteria, "Safety gate")
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := AgentByName("scheduler")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown agent")
		assert.Contains(t, err.Error(), "discharge")
	})
}

func TestAgentLoadSplits(t *testing.T) {
	agent, err := AgentByName("discharge")
	require.NoError(t, err)

	train, val := agent.Load(0.7)
	assert.Len(t, train, 3)
	assert.Len(t, val, 2)
}
