package quizshow

import (
	"encoding/json"
	"testing"
)

func draft(text string, correct int) generatedQuestion {
	return generatedQuestion{
		Text:          text,
		Options:       []string{"alpha", "beta", "gamma", "delta"},
		CorrectAnswer: correct,
		Hint:          "a hint",
		DebugCode:     "git log",
		Poll:          []int{10, 70, 15, 5},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func draftsReply(t *testing.T, drafts ...generatedQuestion) string {
	return mustJSON(t, map[string]any{"questions": drafts})
}

func verdict(t *testing.T, action ValidationAction, revised *generatedQuestion) string {
	v := map[string]any{"action": action, "reason": "because"}
	if revised != nil {
		v["revised_question"] = revised
	}
	return mustJSON(t, v)
}

func dedupReply(t *testing.T, duplicate bool, key string) string {
	return mustJSON(t, map[string]any{"is_duplicate": duplicate, "reason": "compared", "duplicate_id": key})
}
