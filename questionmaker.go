package quizshow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// QuestionMaker drafts catalog questions with a chat model
type QuestionMaker struct {
	client ChatCompleter
	Model  string
}

// NewQuestionMaker creates a maker on client
func NewQuestionMaker(client ChatCompleter) *QuestionMaker {
	return &QuestionMaker{client: client}
}

// GenerateQuestions drafts batchSize questions for req. Drafts that cannot be
// played (wrong option count, bad index, bad poll) are dropped here.
func (qm *QuestionMaker) GenerateQuestions(ctx context.Context, req GenerationRequest, batchSize int, logger *LLMLogger) ([]*Question, error) {
	log.Printf("Generating %d %s questions for topic: %s", batchSize, req.Tier, req.Topic)

	fn := &openai.FunctionDefinition{
		Name:        "submit_questions",
		Description: "Submit generated quiz show questions",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"questions": map[string]interface{}{
					"type":  "array",
					"items": questionSchema(),
				},
			},
			"required": []string{"questions"},
		},
	}

	args, err := callTool(ctx, qm.client, qm.Model, "QuestionMaker",
		"You are an expert quiz show question writer. Generate multiple choice questions with exactly 4 options each.",
		qm.buildPrompt(req, batchSize), fn, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	var toolArgs struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(args), &toolArgs); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	questions := make([]*Question, 0, len(toolArgs.Questions))
	for _, g := range toolArgs.Questions {
		q := g.toQuestion(uuid.NewString(), req.Tier, req.Topic)
		q.Status = StatusTentative
		if err := q.Validate(); err != nil {
			VerboseLog("Dropping unplayable draft %q: %v", q.Text, err)
			logger.LogQuestionResult(q.Key, string(ActionReject), err.Error())
			continue
		}
		questions = append(questions, q)
	}

	log.Printf("Generated %d questions", len(questions))
	return questions, nil
}

func (qm *QuestionMaker) buildPrompt(req GenerationRequest, batchSize int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple choice questions about: %s\n\n", batchSize, req.Topic))

	if req.SourceMaterial != "" {
		sb.WriteString("Use the following source material as reference:\n")
		sb.WriteString(req.SourceMaterial)
		sb.WriteString("\n\n")
	}

	switch req.Tier {
	case TierEasy:
		sb.WriteString("Difficulty: easy. These open the game; most players should know them.\n\n")
	case TierMedium:
		sb.WriteString("Difficulty: medium. A working practitioner should know them.\n\n")
	case TierHard:
		sb.WriteString("Difficulty: hard. Only experts should be confident.\n\n")
	}

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Each question must have exactly 4 options\n")
	sb.WriteString("- Exactly one option is correct; the others are plausible but clearly wrong\n")
	sb.WriteString("- Avoid questions where the answer is given away in the question text\n")
	sb.WriteString("- The hint is documentation that helps without naming the answer\n")
	sb.WriteString("- The debug snippet is a short command or code fragment related to the answer\n")
	sb.WriteString("- The poll gives 4 integer percentages summing to 100, as a studio audience would vote; harder questions get flatter polls\n")
	sb.WriteString("- Use the submit_questions tool to return your questions\n")

	return sb.String()
}
