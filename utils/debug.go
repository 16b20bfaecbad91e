// Package utils provides logging and debug-artifact helpers shared by the
// training pipeline.
package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DebugOptions controls what the DebugManager records during a training run.
type DebugOptions struct {
	Enabled      bool
	OutputDir    string
	SaveToFile   bool
	LogPrompts   bool
	LogResponses bool
}

// DebugManager captures prompts, model responses, and per-round evaluation
// data so a failed optimization run can be replayed offline.
type DebugManager struct {
	options   DebugOptions
	logger    Logger
	outputDir string
}

// NewDebugManager creates a debug manager. When saving is enabled the output
// directory is created eagerly so write failures show up at startup, not
// three rounds into a run.
func NewDebugManager(options DebugOptions, logger Logger) *DebugManager {
	outputDir := options.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(".", "debug_output")
	}
	if logger == nil {
		logger = NewLogger(LogLevelDebug)
	}

	if options.SaveToFile && options.Enabled {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			logger.Warn("failed to create debug output directory", "dir", outputDir, "error", err)
		}
	}

	return &DebugManager{
		options:   options,
		logger:    logger,
		outputDir: outputDir,
	}
}

// IsEnabled reports whether debugging is active.
func (dm *DebugManager) IsEnabled() bool {
	return dm.options.Enabled
}

// Log records a free-form debug message.
func (dm *DebugManager) Log(format string, args ...any) {
	if !dm.options.Enabled {
		return
	}

	message := fmt.Sprintf(format, args...)
	dm.logger.Debug(message)

	if dm.options.SaveToFile {
		dm.appendToFile("debug.log", message)
	}
}

// SaveRound persists a round's evaluation data as indented JSON.
func (dm *DebugManager) SaveRound(agent string, round int, data any) {
	if !dm.options.Enabled || !dm.options.SaveToFile {
		return
	}

	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		dm.logger.Warn("failed to encode round data", "agent", agent, "round", round, "error", err)
		return
	}

	filename := fmt.Sprintf("%s_round_%d_%s.json", agent, round, time.Now().Format("20060102_150405"))
	dm.appendToFile(filename, string(body))
}

// SavePrompt persists a prompt snapshot under the given name.
func (dm *DebugManager) SavePrompt(name, prompt string) {
	if !dm.options.Enabled || !dm.options.SaveToFile {
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", name, time.Now().Format("20060102_150405"))
	dm.appendToFile(filename, prompt)
}

// LogPrompt records an outgoing prompt when prompt logging is on.
func (dm *DebugManager) LogPrompt(name, prompt string) {
	if !dm.options.Enabled || !dm.options.LogPrompts {
		return
	}

	dm.Log("prompt [%s]: %s", name, prompt)
	if dm.options.SaveToFile {
		dm.SavePrompt(name, prompt)
	}
}

// LogResponse records a model response when response logging is on.
func (dm *DebugManager) LogResponse(name, response string) {
	if !dm.options.Enabled || !dm.options.LogResponses {
		return
	}

	dm.Log("response [%s]: %s", name, response)
	if dm.options.SaveToFile {
		filename := fmt.Sprintf("response_%s_%s.txt", name, time.Now().Format("20060102_150405"))
		dm.appendToFile(filename, response)
	}
}

func (dm *DebugManager) appendToFile(filename, content string) {
	path := filepath.Join(dm.outputDir, filename)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		dm.logger.Error("failed to open debug output file", "error", err, "file", path)
		return
	}
	defer file.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(file, "[%s] %s\n", timestamp, content); err != nil {
		dm.logger.Error("failed to write debug output", "error", err, "file", path)
	}
}
