package quizshow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TopicSuggestion is a fresh subject for a catalog generation run
type TopicSuggestion struct {
	Topic          string `json:"topic"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	SourceMaterial string `json:"source_material"`
}

// TopicSuggester proposes topics that the catalog does not cover yet
type TopicSuggester struct {
	client ChatCompleter
	Model  string
}

func NewTopicSuggester(client ChatCompleter) *TopicSuggester {
	return &TopicSuggester{client: client}
}

// SuggestTopic asks for one topic unlike existing, optionally within category
func (ts *TopicSuggester) SuggestTopic(ctx context.Context, existing []string, category string, logger *LLMLogger) (*TopicSuggestion, error) {
	var prompt strings.Builder

	prompt.WriteString("Generate ONE topic for a developer trivia game show in the style of Who Wants to Be a Millionaire.\n\n")
	if category != "" {
		prompt.WriteString(fmt.Sprintf("Focus on the category: %s\n\n", category))
	}

	if len(existing) > 0 {
		prompt.WriteString("The topic must be clearly different from these existing topics:\n")
		for _, topic := range existing {
			prompt.WriteString(fmt.Sprintf("- %s\n", topic))
		}
		prompt.WriteString("\n")
	}

	prompt.WriteString("Requirements:\n")
	prompt.WriteString("- Broad enough for 15 questions ranging from easy to expert\n")
	prompt.WriteString("- About software development, version control, open source or developer tooling\n")
	prompt.WriteString("- Source material: 3-4 detailed paragraphs with facts, commands and history that questions can be checked against\n\n")
	prompt.WriteString("Return the topic using the submit_topic tool.")

	fn := &openai.FunctionDefinition{
		Name:        "submit_topic",
		Description: "Submit the generated topic",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"topic": map[string]interface{}{
					"type":        "string",
					"description": "The topic name",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Brief description of what the questions cover",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category of the topic (e.g., Git, CI/CD, Open Source)",
				},
				"source_material": map[string]interface{}{
					"type":        "string",
					"description": "Detailed source material (3-4 paragraphs) about the topic",
				},
			},
			"required": []string{"topic", "description", "category", "source_material"},
		},
	}

	args, err := callTool(ctx, ts.client, ts.Model, "TopicSuggester",
		"You are an expert at creating engaging quiz show topics for developers. When writing source material, be comprehensive and specific.",
		prompt.String(), fn, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to generate topic: %w", err)
	}

	var topic TopicSuggestion
	if err := json.Unmarshal([]byte(args), &topic); err != nil {
		return nil, fmt.Errorf("failed to parse topic: %w", err)
	}
	if strings.TrimSpace(topic.Topic) == "" {
		return nil, errors.New("suggested topic is empty")
	}
	return &topic, nil
}
