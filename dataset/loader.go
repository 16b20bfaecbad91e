package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDocuments reads discharge documents from plain text files, one sample
// per file. Missing files are skipped so a glob over a partially synced
// directory still loads.
func LoadDocuments(paths []string) ([]Sample, error) {
	samples := make([]Sample, 0, len(paths))
	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read document %s: %w", path, err)
		}
		samples = append(samples, Sample{
			ID:           filepath.Base(path),
			DocumentText: string(text),
		})
	}
	return samples, nil
}

// datasetFile is the on-disk YAML layout.
type datasetFile struct {
	Samples []Sample `yaml:"samples"`
}

// LoadYAML reads a custom sample corpus from a YAML file of the form:
//
//	samples:
//	  - id: custom_01
//	    document_text: |
//	      DISCHARGE SUMMARY ...
//	  - id: custom_safety_01
//	    text: "Patient SSN: 000-00-0000"
//	    expected_safe: false
//
// Every sample must carry at least one input field.
func LoadYAML(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	if len(file.Samples) == 0 {
		return nil, fmt.Errorf("dataset %s contains no samples", path)
	}

	for i, sample := range file.Samples {
		if err := sample.Validate(); err != nil {
			return nil, fmt.Errorf("dataset %s: sample %d: %w", path, i, err)
		}
	}
	return file.Samples, nil
}
