package quizshow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// QuestionDedup rejects questions that repeat one already in the catalog
type QuestionDedup struct {
	client ChatCompleter
	Model  string
	cache  map[string]*Question // accepted questions by key
	texts  map[string]string    // normalized text -> key
}

// DedupResult represents the result of deduplication
type DedupResult struct {
	IsDuplicate  bool   `json:"is_duplicate"`
	Reason       string `json:"reason"`
	DuplicateKey string `json:"duplicate_key,omitempty"`
}

// NewQuestionDedup creates a deduplicator seeded with existing questions
func NewQuestionDedup(client ChatCompleter, existing []Question) *QuestionDedup {
	qd := &QuestionDedup{
		client: client,
		cache:  make(map[string]*Question),
		texts:  make(map[string]string),
	}
	for i := range existing {
		q := existing[i].clone()
		if q.Key == "" {
			q.Key = fmt.Sprintf("catalog-%d", q.ID)
		}
		qd.remember(&q)
	}
	return qd
}

func (qd *QuestionDedup) remember(q *Question) {
	qd.cache[q.Key] = q
	qd.texts[normalizeText(q.Text)] = q.Key
}

// Size returns the number of known questions
func (qd *QuestionDedup) Size() int {
	return len(qd.cache)
}

// CheckDuplicate checks question against every known question of its tier.
// Identical text is caught without a model call. Unique questions are added
// to the known set.
func (qd *QuestionDedup) CheckDuplicate(ctx context.Context, question *Question, logger *LLMLogger) (*DedupResult, error) {
	if key, ok := qd.texts[normalizeText(question.Text)]; ok {
		result := &DedupResult{IsDuplicate: true, Reason: "Identical question text", DuplicateKey: key}
		logger.LogDedupResult(question.Key, true, result.Reason, key)
		return result, nil
	}

	var peers []*Question
	for _, existing := range qd.cache {
		if existing.Tier == question.Tier {
			peers = append(peers, existing)
		}
	}
	if len(peers) == 0 {
		qd.remember(question)
		result := &DedupResult{IsDuplicate: false, Reason: "First question of its tier"}
		logger.LogDedupResult(question.Key, false, result.Reason, "")
		return result, nil
	}

	VerboseLog("Checking for duplicates: %s against %d questions", question.Key, len(peers))

	var sb strings.Builder
	sb.WriteString("Existing accepted questions:\n\n")
	for _, existing := range peers {
		sb.WriteString(fmt.Sprintf("ID: %s\n", existing.Key))
		writeQuestion(&sb, existing)
		sb.WriteString("\n")
	}
	sb.WriteString("New question to check:\n\n")
	sb.WriteString(fmt.Sprintf("ID: %s\n", question.Key))
	writeQuestion(&sb, question)
	sb.WriteString("\n")
	sb.WriteString(dedupCriteria)

	fn := &openai.FunctionDefinition{
		Name:        "check_duplicate",
		Description: "Check if the new question is a duplicate of any existing question",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"reason": map[string]interface{}{
					"type":        "string",
					"description": "Explanation for the decision",
				},
				"is_duplicate": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the new question is a duplicate",
				},
				"duplicate_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the duplicate question if found (empty if not a duplicate)",
				},
			},
			"required": []string{"reason", "is_duplicate"},
		},
	}

	args, err := callTool(ctx, qd.client, qd.Model, "QuestionDedup",
		"You are an expert at detecting duplicate quiz questions. Compare the new question against existing questions and determine if it's a duplicate.",
		sb.String(), fn, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate: %w", err)
	}

	var toolArgs struct {
		Reason      string `json:"reason"`
		IsDuplicate bool   `json:"is_duplicate"`
		DuplicateID string `json:"duplicate_id"`
	}
	if err := json.Unmarshal([]byte(args), &toolArgs); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	result := &DedupResult{
		IsDuplicate:  toolArgs.IsDuplicate,
		Reason:       toolArgs.Reason,
		DuplicateKey: toolArgs.DuplicateID,
	}
	if !result.IsDuplicate {
		qd.remember(question)
	}

	logger.LogDedupResult(question.Key, result.IsDuplicate, result.Reason, result.DuplicateKey)
	VerboseLog("Question %s: duplicate=%v, reason=%s", question.Key, result.IsDuplicate, result.Reason)
	return result, nil
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

const dedupCriteria = `Evaluation criteria for duplicates:

1. EXACT DUPLICATES: Same question text, same options, same correct answer
2. NEAR-DUPLICATES:
   - Same concept tested but different wording
   - Same question with minor rephrasing
   - Questions that test the same knowledge point
3. NOT DUPLICATES:
   - Different aspects of the same topic
   - Questions that test related but distinct concepts

Consider both the question text and the answer choices when determining duplicates.
If the new question is a duplicate, provide the ID of the existing question it duplicates.`
