package quizshow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// MaxRevisions is how often a question may be revised before it is rejected
const MaxRevisions = 3

// QuestionChecker validates and potentially revises drafted questions
type QuestionChecker struct {
	client ChatCompleter
	Model  string
}

func NewQuestionChecker(client ChatCompleter) *QuestionChecker {
	return &QuestionChecker{client: client}
}

// CheckQuestion validates a single question and returns the verdict. A
// revision that cannot be played is turned into a rejection.
func (qc *QuestionChecker) CheckQuestion(ctx context.Context, question *Question, logger *LLMLogger) (*ValidationResult, error) {
	VerboseLog("Checking question: %s (revision count: %d)", question.Key, question.RevisionCount)

	if question.RevisionCount >= MaxRevisions {
		result := &ValidationResult{
			QuestionKey: question.Key,
			Action:      ActionReject,
			Reason:      fmt.Sprintf("Question rejected after %d revision attempts", question.RevisionCount),
		}
		logger.LogQuestionResult(question.Key, string(result.Action), result.Reason)
		VerboseLog("Question %s: %s - %s", question.Key, result.Action, result.Reason)
		return result, nil
	}

	fn := &openai.FunctionDefinition{
		Name:        "evaluate_question",
		Description: "Evaluate a quiz show question and decide whether to accept, reject, or revise it",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"reason": map[string]interface{}{
					"type":        "string",
					"description": "Explanation for the decision",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"accept", "reject", "revise"},
					"description": "What to do with this question",
				},
				"revised_question": questionSchema(),
			},
			"required": []string{"reason", "action"},
		},
	}

	args, err := callTool(ctx, qc.client, qc.Model, "QuestionChecker",
		"You are an expert quiz show question validator. Evaluate questions for correctness, clarity, difficulty and fairness.",
		qc.buildPrompt(question), fn, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to check question: %w", err)
	}

	var toolArgs struct {
		Reason          string             `json:"reason"`
		Action          string             `json:"action"`
		RevisedQuestion *generatedQuestion `json:"revised_question,omitempty"`
	}
	if err := json.Unmarshal([]byte(args), &toolArgs); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	result := &ValidationResult{
		QuestionKey: question.Key,
		Action:      ValidationAction(toolArgs.Action),
		Reason:      toolArgs.Reason,
	}

	switch result.Action {
	case ActionAccept, ActionReject:
	case ActionRevise:
		if toolArgs.RevisedQuestion == nil {
			result.Action = ActionReject
			result.Reason = "revision requested without a revised question: " + result.Reason
			break
		}
		revised := toolArgs.RevisedQuestion.toQuestion(question.Key, question.Tier, question.Topic)
		revised.Status = StatusRevised
		revised.RevisionCount = question.RevisionCount + 1
		if err := revised.Validate(); err != nil {
			result.Action = ActionReject
			result.Reason = "revision is not playable: " + err.Error()
			break
		}
		result.RevisedQuestion = revised
	default:
		return nil, fmt.Errorf("unknown action %q", toolArgs.Action)
	}

	logger.LogQuestionResult(question.Key, string(result.Action), result.Reason)
	VerboseLog("Question %s: %s - %s", question.Key, result.Action, result.Reason)
	return result, nil
}

func (qc *QuestionChecker) buildPrompt(question *Question) string {
	var sb strings.Builder

	sb.WriteString("Evaluate the following quiz show question:\n\n")
	sb.WriteString(fmt.Sprintf("Topic: %s\n", question.Topic))
	sb.WriteString(fmt.Sprintf("Intended difficulty: %s\n\n", question.Tier))
	writeQuestion(&sb, question)

	sb.WriteString("\nAUTOMATIC REJECTION:\n")
	sb.WriteString("- The correct answer appears in the question text\n")
	sb.WriteString("- The question is not relevant to the topic\n")
	sb.WriteString("- The marked answer is wrong, or more than one option is correct\n\n")

	sb.WriteString("Additional criteria:\n")
	sb.WriteString("1. Is the question clear and unambiguous?\n")
	sb.WriteString("2. Does the difficulty match the intended tier?\n")
	sb.WriteString("3. Does the hint help without naming the answer?\n")
	sb.WriteString("4. Is the debug snippet related to the answer and plausible?\n")
	sb.WriteString("5. Does the poll sum to 100 and look like a real audience for this difficulty?\n\n")

	sb.WriteString("Decision guidelines:\n")
	sb.WriteString("- REJECT: fundamental problems\n")
	sb.WriteString("- REVISE: the question has potential but a field needs fixing\n")
	sb.WriteString("- ACCEPT: the question is good as-is\n\n")
	sb.WriteString("A good question with a basic hint is better than no question; prefer ACCEPT over REVISE for cosmetic issues.\n")
	sb.WriteString("If you choose to revise, provide a complete revised version of the question.")

	return sb.String()
}

// writeQuestion renders q for a prompt, marking the correct option with *
func writeQuestion(sb *strings.Builder, q *Question) {
	sb.WriteString(fmt.Sprintf("Question: %s\n", q.Text))
	sb.WriteString("Options:\n")
	for i, option := range q.Options {
		marker := " "
		if i == q.CorrectAnswer {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s%d. %s\n", marker, i+1, option))
	}
	sb.WriteString(fmt.Sprintf("Correct Answer: %d\n", q.CorrectAnswer+1))
	if q.Hint != "" {
		sb.WriteString(fmt.Sprintf("Hint: %s\n", q.Hint))
	}
	if q.DebugCode != "" {
		sb.WriteString(fmt.Sprintf("Debug snippet: %s\n", q.DebugCode))
	}
	if len(q.Poll) > 0 {
		sb.WriteString(fmt.Sprintf("Poll: %v\n", q.Poll))
	}
}
