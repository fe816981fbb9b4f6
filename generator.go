package quizshow

import (
	"context"
	"errors"
	"fmt"
	"log"
)

const (
	defaultBatchSize = 5
	maxBatchSize     = 10
	defaultMaxRounds = 10
	maxCheckAttempts = 2
)

// Generator orchestrates drafting, checking and deduplication of catalog
// questions for one tier.
type Generator struct {
	maker   *QuestionMaker
	checker *QuestionChecker
	dedup   *QuestionDedup
	pool    *QuestionPool
	logger  *LLMLogger

	BatchSize int
	MaxRounds int
}

// NewGenerator creates a generator on client. existing is the catalog the
// new questions must not repeat.
func NewGenerator(client ChatCompleter, existing []Question) *Generator {
	return &Generator{
		maker:     NewQuestionMaker(client),
		checker:   NewQuestionChecker(client),
		dedup:     NewQuestionDedup(client, existing),
		pool:      NewQuestionPool(),
		BatchSize: defaultBatchSize,
		MaxRounds: defaultMaxRounds,
	}
}

// SetLogger routes every model interaction to logger
func (g *Generator) SetLogger(logger *LLMLogger) {
	g.logger = logger
}

// SetModel sets the chat model of every stage
func (g *Generator) SetModel(model string) {
	g.maker.Model = model
	g.checker.Model = model
	g.dedup.Model = model
}

// GenerateQuestions runs the pipeline until req.NumQuestions questions were
// accepted.
func (g *Generator) GenerateQuestions(ctx context.Context, req GenerationRequest) ([]Question, error) {
	questions, errs := g.GenerateStream(ctx, req)

	var out []Question
	for q := range questions {
		out = append(out, q)
	}
	if err := <-errs; err != nil {
		return out, err
	}
	return out, nil
}

// GenerateStream runs the pipeline in the background and emits each accepted
// question as soon as it passed the checker and deduplication. The error
// channel receives at most one value after the question channel is closed.
func (g *Generator) GenerateStream(ctx context.Context, req GenerationRequest) (<-chan Question, <-chan error) {
	out := make(chan Question)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(out)
		if err := g.run(ctx, req, out); err != nil {
			errs <- err
		}
	}()

	return out, errs
}

func (g *Generator) run(ctx context.Context, req GenerationRequest, out chan<- Question) error {
	if !req.Tier.Valid() {
		return fmt.Errorf("invalid tier %q", req.Tier)
	}
	if req.NumQuestions <= 0 {
		return errors.New("number of questions must be positive")
	}

	log.Printf("Starting generation for topic: %s, tier: %s, target questions: %d", req.Topic, req.Tier, req.NumQuestions)

	batchSize := g.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	maxRounds := g.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}

	accepted := 0
	for round := 1; accepted < req.NumQuestions; round++ {
		if round > maxRounds {
			return fmt.Errorf("gave up after %d rounds with %d of %d questions", maxRounds, accepted, req.NumQuestions)
		}

		if g.pool.IsEmpty() {
			VerboseLog("Pool is empty, generating new batch of %d questions", batchSize)
			questions, err := g.maker.GenerateQuestions(ctx, req, batchSize, g.logger)
			if err != nil {
				return fmt.Errorf("failed to generate questions: %w", err)
			}
			for _, q := range questions {
				g.pool.Add(q)
			}
		}

		processed := g.processPool(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, q := range processed.accepted {
			if accepted >= req.NumQuestions {
				break
			}
			select {
			case out <- *q:
				accepted++
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		log.Printf("Round %d: %d accepted, %d rejected, %d revised, %d duplicates",
			round, len(processed.accepted), len(processed.rejected), len(processed.revised), len(processed.duplicates))

		if len(processed.accepted) == 0 && len(processed.rejected)+len(processed.duplicates) > 0 {
			batchSize = min(batchSize+2, maxBatchSize)
			VerboseLog("No questions accepted, increasing batch size to %d", batchSize)
		}
	}

	log.Printf("Generation complete: %d %s questions for topic '%s'", accepted, req.Tier, req.Topic)
	return nil
}

type processResult struct {
	accepted   []*Question
	rejected   []*Question
	revised    []*Question
	duplicates []*Question
}

// processPool drains the pool through the checker and the deduplicator.
// Revised questions go back into the pool and are checked again.
func (g *Generator) processPool(ctx context.Context) processResult {
	result := processResult{}
	failures := make(map[string]int)

	for !g.pool.IsEmpty() {
		if ctx.Err() != nil {
			return result
		}
		question := g.pool.Get()
		if question == nil {
			break
		}

		validation, err := g.checker.CheckQuestion(ctx, question, g.logger)
		if err != nil {
			failures[question.Key]++
			log.Printf("Error checking question %s: %v", question.Key, err)
			if failures[question.Key] < maxCheckAttempts {
				g.pool.Add(question)
			}
			continue
		}

		switch validation.Action {
		case ActionAccept:
			dup, err := g.dedup.CheckDuplicate(ctx, question, g.logger)
			if err != nil {
				log.Printf("Error deduplicating question %s: %v", question.Key, err)
				continue
			}
			if dup.IsDuplicate {
				question.Status = StatusRejected
				result.duplicates = append(result.duplicates, question)
				continue
			}
			question.Status = StatusAccepted
			result.accepted = append(result.accepted, question)

		case ActionReject:
			question.Status = StatusRejected
			result.rejected = append(result.rejected, question)

		case ActionRevise:
			g.pool.Add(validation.RevisedQuestion)
			result.revised = append(result.revised, validation.RevisedQuestion)
		}
	}

	return result
}
