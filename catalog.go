package quizshow

import (
	"fmt"
	"strings"
)

// Number of options every question must carry
const OptionCount = 4

// Catalog is the static question set plus the prize ladder a game is played against
type Catalog struct {
	Questions []Question `json:"questions" yaml:"questions"`
	Ladder    Ladder     `json:"ladder,omitempty" yaml:"ladder,omitempty"`
}

// DefaultCatalog returns a copy of the built-in reference catalog
func DefaultCatalog() *Catalog {
	questions := make([]Question, len(referenceQuestions))
	for i, q := range referenceQuestions {
		questions[i] = q.clone()
	}
	return &Catalog{
		Questions: questions,
		Ladder:    referenceLadder(),
	}
}

// DefaultLadder returns the reference 15-slot prize ladder
func DefaultLadder() Ladder {
	return referenceLadder()
}

// DefaultQuestion is served when the catalog has nothing usable for a slot
func DefaultQuestion() Question {
	return Question{
		ID:            1,
		Tier:          TierEasy,
		Text:          "What is Git?",
		Options:       []string{"A programming language", "A version control system", "A text editor", "A cloud hosting service"},
		CorrectAnswer: 1,
		Hint:          "Git is a distributed version control system.",
		DebugCode:     "git --version",
		Poll:          []int{5, 85, 6, 4},
	}
}

// ByTier returns the catalog questions of the given tier, in catalog order
func (c *Catalog) ByTier(tier Tier) []Question {
	var out []Question
	for _, q := range c.Questions {
		if q.Tier == tier {
			out = append(out, q)
		}
	}
	return out
}

// ladder returns the configured ladder or the reference one
func (c *Catalog) ladder() Ladder {
	if len(c.Ladder) == 0 {
		return referenceLadder()
	}
	return c.Ladder
}

// Validate checks semantic constraints of every question and of the ladder.
func (c *Catalog) Validate() error {
	var errs []string

	for i, q := range c.Questions {
		if err := q.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("questions[%d]: %v", i, err))
		}
	}
	if err := c.Ladder.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Sanitized returns a copy of the catalog without malformed questions.
// An invalid ladder is replaced with the reference ladder.
func (c *Catalog) Sanitized() *Catalog {
	out := &Catalog{Ladder: c.Ladder}
	for _, q := range c.Questions {
		if err := q.Validate(); err != nil {
			VerboseLog("Dropping question %d (%q): %v", q.ID, q.Text, err)
			continue
		}
		out.Questions = append(out.Questions, q.clone())
	}
	if err := out.Ladder.Validate(); err != nil || len(out.Ladder) == 0 {
		out.Ladder = referenceLadder()
	}
	return out
}

// Validate checks that a single question can be played
func (q Question) Validate() error {
	var errs []string

	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, "text is required")
	}
	if !q.Tier.Valid() {
		errs = append(errs, fmt.Sprintf("tier %q must be one of: easy, medium, hard", q.Tier))
	}
	if len(q.Options) != OptionCount {
		errs = append(errs, fmt.Sprintf("must have exactly %d options, got %d", OptionCount, len(q.Options)))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		errs = append(errs, fmt.Sprintf("correct_answer must be in [0,%d)", OptionCount))
	}
	if len(q.Poll) != 0 && len(q.Poll) != OptionCount {
		errs = append(errs, fmt.Sprintf("poll must have %d entries when present", OptionCount))
	}
	for _, p := range q.Poll {
		if p < 0 {
			errs = append(errs, "poll entries must be >= 0")
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, ", "))
	}
	return nil
}

func (q Question) clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	if q.Poll != nil {
		out.Poll = append([]int(nil), q.Poll...)
	}
	return out
}
