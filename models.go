package quizshow

import "time"

// Tier is the difficulty bucket a question belongs to
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Valid reports whether t is one of the three known tiers
func (t Tier) Valid() bool {
	switch t {
	case TierEasy, TierMedium, TierHard:
		return true
	}
	return false
}

// Question represents a single four-option trivia question
type Question struct {
	// ID is the catalog id. The session copy handed out by the selector
	// carries the slot number instead.
	ID            int            `json:"id" yaml:"id"`
	Key           string         `json:"key,omitempty" yaml:"key,omitempty"`
	Tier          Tier           `json:"tier" yaml:"tier"`
	Text          string         `json:"text" yaml:"text"`
	Options       []string       `json:"options" yaml:"options"`
	CorrectAnswer int            `json:"correct_answer" yaml:"correct_answer"` // 0-based index
	Hint          string         `json:"hint,omitempty" yaml:"hint,omitempty"`
	DebugCode     string         `json:"debug_code,omitempty" yaml:"debug_code,omitempty"`
	Poll          []int          `json:"poll,omitempty" yaml:"poll,omitempty"`
	Topic         string         `json:"topic,omitempty" yaml:"topic,omitempty"`
	Status        QuestionStatus `json:"status,omitempty" yaml:"-"`
	RevisionCount int            `json:"-" yaml:"-"`
}

// QuestionStatus represents the state of a question in the generation pipeline
type QuestionStatus string

const (
	StatusTentative QuestionStatus = "tentative"
	StatusAccepted  QuestionStatus = "accepted"
	StatusRejected  QuestionStatus = "rejected"
	StatusRevised   QuestionStatus = "revised"
)

// PrizeLevel is one rung of the prize ladder
type PrizeLevel struct {
	Slot   int  `json:"slot" yaml:"slot"`
	Amount int  `json:"amount" yaml:"amount"`
	Safe   bool `json:"safe,omitempty" yaml:"safe,omitempty"`
}

// GameStatus is the lifecycle state of a play session
type GameStatus string

const (
	StatusNotStarted GameStatus = "notStarted"
	StatusInProgress GameStatus = "inProgress"
	StatusWalkAway   GameStatus = "walkAway"
	StatusWon        GameStatus = "won"
	StatusLost       GameStatus = "lost"
)

// Terminal reports whether no further transitions can happen from s
func (s GameStatus) Terminal() bool {
	return s == StatusWalkAway || s == StatusWon || s == StatusLost
}

// AnsweredQuestion is one entry of the post-game answer log
type AnsweredQuestion struct {
	Question string `json:"question"`
	Slot     int    `json:"slot"`
	Correct  bool   `json:"correct"`
}

// ValidationResult represents the result of checking a generated question
type ValidationResult struct {
	QuestionKey     string           `json:"question_key"`
	Action          ValidationAction `json:"action"`
	Reason          string           `json:"reason"`
	RevisedQuestion *Question        `json:"revised_question,omitempty"`
}

// ValidationAction represents what the validator decided to do
type ValidationAction string

const (
	ActionAccept ValidationAction = "accept"
	ActionReject ValidationAction = "reject"
	ActionRevise ValidationAction = "revise"
)

// GenerationRequest represents a request to generate catalog questions
type GenerationRequest struct {
	Topic          string `json:"topic"`
	Tier           Tier   `json:"tier"`
	NumQuestions   int    `json:"num_questions"`
	SourceMaterial string `json:"source_material,omitempty"`
}

// GenerationRun is a catalog generation job as stored in the database
type GenerationRun struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	Tier         Tier      `json:"tier"`
	NumQuestions int       `json:"num_questions"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `json:"status"` // "generating", "completed", "failed"
}
