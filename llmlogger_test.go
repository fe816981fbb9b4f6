package quizshow

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMLoggerWritesRun(t *testing.T) {
	dir := t.TempDir()
	req := GenerationRequest{Topic: "Git", Tier: TierEasy, NumQuestions: 1, SourceMaterial: "notes"}
	logger, err := NewLLMLogger(dir, "run-1", req)
	require.NoError(t, err)

	chat := newScriptedChat().
		reply("submit_questions", draftsReply(t, draft("What is HEAD?", 0))).
		reply("evaluate_question", verdict(t, ActionAccept, nil))
	gen := NewGenerator(chat, nil)
	gen.SetLogger(logger)
	gen.SetModel("test-model")

	_, err = gen.GenerateQuestions(context.Background(), req)
	require.NoError(t, err)
	path := logger.Path()
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Run ID: run-1")
	assert.Contains(t, text, "Source Material Length: 5 characters")
	assert.Contains(t, text, "=== LLM REQUEST (QuestionMaker) ===")
	assert.Contains(t, text, "=== LLM RESPONSE (QuestionChecker) ===")
	assert.Contains(t, text, ": accept - because")
	assert.Contains(t, text, "UNIQUE - First question of its tier")
	assert.Contains(t, text, "=== Catalog Generation Complete ===")

	assert.Equal(t, "test-model", chat.requests[0].Model)
}

func TestNilLLMLoggerDiscards(t *testing.T) {
	var logger *LLMLogger
	logger.Logf("ignored %d", 1)
	logger.LogLLMRequest("m", "p")
	logger.LogDedupResult("k", true, "r", "d")
	assert.Empty(t, logger.Path())
	assert.NoError(t, logger.Close())
}
