package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCorpora(t *testing.T) {
	t.Run("Discharge", func(t *testing.T) {
		samples := DischargeSamples()
		require.Len(t, samples, 5)
		assert.Equal(t, "chf_case_01", samples[0].ID)
		assert.Contains(t, samples[0].DocumentText, "congestive heart failure")
		for _, s := range samples {
			assert.NotEmpty(t, s.DocumentText, s.ID)
			assert.NoError(t, s.Validate())
		}
	})

	t.Run("Education", func(t *testing.T) {
		samples := EducationSamples()
		require.Len(t, samples, 8)
		assert.Equal(t, "Total Knee Replacement post-surgery", samples[0].Context)
	})

	t.Run("Safety", func(t *testing.T) {
		samples := SafetySamples()
		require.Len(t, samples, 4)
		require.NotNil(t, samples[1].ExpectedSafe)
		assert.False(t, *samples[1].ExpectedSafe)
		assert.Contains(t, samples[1].Text, "SSN")
		require.NotNil(t, samples[0].ExpectedSafe)
		assert.True(t, *samples[0].ExpectedSafe)
	})

	t.Run("CopiesAreIndependent", func(t *testing.T) {
		first := DischargeSamples()
		first[0].ID = "mutated"
		assert.Equal(t, "chf_case_01", DischargeSamples()[0].ID)
	})
}

func TestSampleInput(t *testing.T) {
	assert.Equal(t, "doc", Sample{DocumentText: "doc", Context: "ctx", Text: "txt"}.Input())
	assert.Equal(t, "ctx", Sample{Context: "ctx", Text: "txt"}.Input())
	assert.Equal(t, "txt", Sample{Text: "txt"}.Input())
	assert.Empty(t, Sample{}.Input())
}

func TestSampleValidate(t *testing.T) {
	assert.NoError(t, Sample{ID: "x", Text: "content"}.Validate())
	assert.Error(t, Sample{ID: "empty"}.Validate())
}

func TestSplit(t *testing.T) {
	samples := DischargeSamples()

	t.Run("DefaultRatio", func(t *testing.T) {
		train, val := Split(samples, 0.7)
		assert.Len(t, train, 3)
		assert.Len(t, val, 2)
		assert.Equal(t, "chf_case_01", train[0].ID)
		assert.Equal(t, "diabetes_case_01", val[0].ID)
	})

	t.Run("TinyRatioKeepsTrainNonEmpty", func(t *testing.T) {
		train, val := Split(samples, 0.01)
		require.Len(t, train, 1)
		assert.Equal(t, "chf_case_01", train[0].ID)
		assert.Len(t, val, 5)
	})

	t.Run("HugeRatioKeepsValNonEmpty", func(t *testing.T) {
		train, val := Split(samples, 0.99)
		assert.Len(t, train, 4)
		require.Len(t, val, 1)
		assert.Equal(t, "appendectomy_case_01", val[0].ID)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		train, val := Split(nil, 0.7)
		assert.Nil(t, train)
		assert.Nil(t, val)
	})

	t.Run("SingleSampleAppearsInBoth", func(t *testing.T) {
		one := []Sample{{ID: "only", Text: "t"}}
		train, val := Split(one, 0.7)
		require.Len(t, train, 1)
		require.Len(t, val, 1)
		assert.Equal(t, "only", train[0].ID)
		assert.Equal(t, "only", val[0].ID)
	})
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "note1.txt")
	second := filepath.Join(dir, "note2.txt")
	require.NoError(t, os.WriteFile(first, []byte("DISCHARGE SUMMARY one"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("DISCHARGE SUMMARY two"), 0o644))

	samples, err := LoadDocuments([]string{
		first,
		filepath.Join(dir, "missing.txt"),
		second,
	})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "note1.txt", samples[0].ID)
	assert.Equal(t, "DISCHARGE SUMMARY one", samples[0].DocumentText)
	assert.Equal(t, "DISCHARGE SUMMARY two", samples[1].DocumentText)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()

	t.Run("ValidFile", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		content := `samples:
  - id: custom_01
    document_text: |
      DISCHARGE SUMMARY
      Patient had surgery.
  - id: custom_safety_01
    text: "Patient SSN: 000-00-0000"
    expected_safe: false
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		samples, err := LoadYAML(path)
		require.NoError(t, err)
		require.Len(t, samples, 2)
		assert.Equal(t, "custom_01", samples[0].ID)
		assert.Contains(t, samples[0].DocumentText, "Patient had surgery.")
		require.NotNil(t, samples[1].ExpectedSafe)
		assert.False(t, *samples[1].ExpectedSafe)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadYAML(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("samples: []\n"), 0o644))
		_, err := LoadYAML(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no samples")
	})

	t.Run("SampleWithoutInput", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("samples:\n  - id: broken\n"), 0o644))
		_, err := LoadYAML(path)
		require.Error(t, err)
	})
}
