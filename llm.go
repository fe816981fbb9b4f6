package quizshow

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the part of the OpenAI client the pipeline needs.
// *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient returns a client for apiKey
func NewOpenAIClient(apiKey string) *openai.Client {
	return openai.NewClient(apiKey)
}

// DefaultModel is used when a pipeline stage has no model set
const DefaultModel = openai.GPT4o

var errNoToolCall = errors.New("no tool calls in response")

// callTool sends one system+user exchange that forces fn and returns the raw
// JSON arguments of the tool call.
func callTool(ctx context.Context, client ChatCompleter, model, module, system, prompt string, fn *openai.FunctionDefinition, logger *LLMLogger) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	logger.LogLLMRequest(module, prompt)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Tools: []openai.Tool{{Type: openai.ToolTypeFunction, Function: fn}},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: fn.Name},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", module, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", model)
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return "", errNoToolCall
	}
	if calls[0].Function.Name != fn.Name {
		return "", fmt.Errorf("unexpected tool call: %s", calls[0].Function.Name)
	}

	logger.LogLLMResponse(module, calls[0].Function.Arguments)
	return calls[0].Function.Arguments, nil
}

// questionSchema is the JSON schema of one generated question
func questionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "The question text",
			},
			"options": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Array of exactly 4 options",
			},
			"correct_answer": map[string]interface{}{
				"type":        "integer",
				"description": "0-based index of the correct answer",
			},
			"hint": map[string]interface{}{
				"type":        "string",
				"description": "One or two sentences of documentation that point towards the answer without stating it",
			},
			"debug_code": map[string]interface{}{
				"type":        "string",
				"description": "A short command or code snippet related to the answer",
			},
			"poll": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "integer"},
				"description": "Audience poll percentages for the 4 options, summing to 100",
			},
		},
		"required": []string{"text", "options", "correct_answer", "hint", "debug_code", "poll"},
	}
}

// generatedQuestion is the tool-call shape of questionSchema
type generatedQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Hint          string   `json:"hint"`
	DebugCode     string   `json:"debug_code"`
	Poll          []int    `json:"poll"`
}

func (g generatedQuestion) toQuestion(key string, tier Tier, topic string) *Question {
	return &Question{
		Key:           key,
		Tier:          tier,
		Text:          g.Text,
		Options:       g.Options,
		CorrectAnswer: g.CorrectAnswer,
		Hint:          g.Hint,
		DebugCode:     g.DebugCode,
		Poll:          g.Poll,
		Topic:         topic,
	}
}
