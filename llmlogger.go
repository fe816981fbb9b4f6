package quizshow

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger writes every model interaction of one generation run to its own
// file. A nil *LLMLogger discards everything.
type LLMLogger struct {
	file  *os.File
	mu    sync.Mutex
	runID string
}

// NewLLMLogger creates dir/<runID>.log and writes the run header
func NewLLMLogger(dir, runID string, req GenerationRequest) (*LLMLogger, error) {
	if dir == "" {
		dir = "log"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, runID+".log"))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &LLMLogger{
		file:  file,
		runID: runID,
	}

	logger.Logf("=== Catalog Generation Log ===\n")
	logger.Logf("Run ID: %s\n", runID)
	logger.Logf("Topic: %s\n", req.Topic)
	logger.Logf("Tier: %s\n", req.Tier)
	logger.Logf("Number of Questions: %d\n", req.NumQuestions)
	if req.SourceMaterial != "" {
		logger.Logf("Source Material Length: %d characters\n", len(req.SourceMaterial))
	}
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("==============================\n\n")

	return logger, nil
}

// Path returns the log file name
func (ll *LLMLogger) Path() string {
	if ll == nil || ll.file == nil {
		return ""
	}
	return ll.file.Name()
}

// Logf writes a timestamped entry
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	if ll == nil {
		return
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.writef(format, args...)
}

func (ll *LLMLogger) writef(format string, args ...interface{}) {
	if ll.file == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(ll.file, "[%s] %s", timestamp, fmt.Sprintf(format, args...))
	ll.file.Sync()
}

func (ll *LLMLogger) LogLLMRequest(module, prompt string) {
	ll.Logf("=== LLM REQUEST (%s) ===\n", module)
	ll.Logf("Prompt:\n%s\n", prompt)
	ll.Logf("=====================\n\n")
}

func (ll *LLMLogger) LogLLMResponse(module, response string) {
	ll.Logf("=== LLM RESPONSE (%s) ===\n", module)
	ll.Logf("Response:\n%s\n", response)
	ll.Logf("======================\n\n")
}

// LogQuestionResult records the checker verdict on a question
func (ll *LLMLogger) LogQuestionResult(questionKey, action, reason string) {
	ll.Logf("Question %s: %s - %s\n", questionKey, action, reason)
}

func (ll *LLMLogger) LogDedupResult(questionKey string, isDuplicate bool, reason, duplicateKey string) {
	if isDuplicate {
		ll.Logf("Question %s: DUPLICATE of %s - %s\n", questionKey, duplicateKey, reason)
	} else {
		ll.Logf("Question %s: UNIQUE - %s\n", questionKey, reason)
	}
}

// Close writes the footer and closes the file
func (ll *LLMLogger) Close() error {
	if ll == nil {
		return nil
	}
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file == nil {
		return nil
	}
	ll.writef("=== Catalog Generation Complete ===\n")
	ll.writef("Completed: %s\n", time.Now().Format(time.RFC3339))
	err := ll.file.Close()
	ll.file = nil
	return err
}
