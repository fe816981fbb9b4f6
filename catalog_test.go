package quizshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Questions, 15)
	for _, tier := range []Tier{TierEasy, TierMedium, TierHard} {
		assert.Len(t, c.ByTier(tier), 5, tier)
	}
}

func TestDefaultCatalogIsACopy(t *testing.T) {
	c := DefaultCatalog()
	c.Questions[0].Options[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultCatalog().Questions[0].Options[0])
}

func TestQuestionValidate(t *testing.T) {
	ok := testQuestion(TierMedium, "fine", 3)
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name   string
		mutate func(*Question)
		want   string
	}{
		{"no text", func(q *Question) { q.Text = "  " }, "text is required"},
		{"bad tier", func(q *Question) { q.Tier = "expert" }, "tier"},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, "exactly 4 options"},
		{"answer out of range", func(q *Question) { q.CorrectAnswer = 4 }, "correct_answer"},
		{"short poll", func(q *Question) { q.Poll = []int{50, 50} }, "poll must have 4"},
		{"negative poll", func(q *Question) { q.Poll = []int{-1, 50, 25, 26} }, "poll entries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQuestion(TierEasy, "q", 0)
			tt.mutate(&q)
			err := q.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestQuestionWithoutPollIsValid(t *testing.T) {
	q := testQuestion(TierEasy, "q", 0)
	q.Poll = nil
	assert.NoError(t, q.Validate())
}

func TestSanitizedDropsBrokenQuestions(t *testing.T) {
	bad := testQuestion(TierHard, "bad", 0)
	bad.CorrectAnswer = 7
	c := &Catalog{
		Questions: []Question{testQuestion(TierEasy, "good", 1), bad},
		Ladder:    Ladder{{Slot: 2, Amount: 5}},
	}

	out := c.Sanitized()
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "good", out.Questions[0].Text)
	assert.Equal(t, DefaultLadder(), out.Ladder)
	assert.Len(t, c.Questions, 2)
}

func TestSanitizedKeepsCustomLadder(t *testing.T) {
	ladder := Ladder{{Slot: 1, Amount: 1}, {Slot: 2, Amount: 5, Safe: true}, {Slot: 3, Amount: 9}}
	c := &Catalog{Questions: []Question{testQuestion(TierEasy, "q", 0)}, Ladder: ladder}

	out := c.Sanitized()
	assert.Equal(t, ladder, out.Ladder)

	g := NewGame(c, GameConfig{Clock: &manualClock{}})
	assert.Equal(t, 3, g.Snapshot().Final)
}
