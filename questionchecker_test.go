package quizshow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pending(text string) *Question {
	q := draft(text, 1).toQuestion("key-"+text, TierHard, "GitHub Actions")
	q.Status = StatusTentative
	return q
}

func TestCheckQuestionAccept(t *testing.T) {
	chat := newScriptedChat().reply("evaluate_question", verdict(t, ActionAccept, nil))
	qc := NewQuestionChecker(chat)

	result, err := qc.CheckQuestion(context.Background(), pending("q"), nil)
	require.NoError(t, err)
	assert.Equal(t, ActionAccept, result.Action)
	assert.Equal(t, "key-q", result.QuestionKey)
	assert.Nil(t, result.RevisedQuestion)

	prompt := chat.requests[0].Messages[1].Content
	assert.Contains(t, prompt, "Intended difficulty: hard")
	assert.Contains(t, prompt, "*2. beta")
}

func TestCheckQuestionRevise(t *testing.T) {
	fixed := draft("q, reworded", 3)
	chat := newScriptedChat().reply("evaluate_question", verdict(t, ActionRevise, &fixed))
	qc := NewQuestionChecker(chat)

	draftQ := pending("q")
	draftQ.RevisionCount = 1
	result, err := qc.CheckQuestion(context.Background(), draftQ, nil)
	require.NoError(t, err)
	require.Equal(t, ActionRevise, result.Action)

	revised := result.RevisedQuestion
	require.NotNil(t, revised)
	assert.Equal(t, draftQ.Key, revised.Key)
	assert.Equal(t, TierHard, revised.Tier)
	assert.Equal(t, 3, revised.CorrectAnswer)
	assert.Equal(t, 2, revised.RevisionCount)
	assert.Equal(t, StatusRevised, revised.Status)
}

func TestCheckQuestionReviseWithoutQuestionRejects(t *testing.T) {
	chat := newScriptedChat().reply("evaluate_question", verdict(t, ActionRevise, nil))
	result, err := NewQuestionChecker(chat).CheckQuestion(context.Background(), pending("q"), nil)
	require.NoError(t, err)
	assert.Equal(t, ActionReject, result.Action)
}

func TestCheckQuestionUnplayableRevisionRejects(t *testing.T) {
	broken := draft("q", 9)
	chat := newScriptedChat().reply("evaluate_question", verdict(t, ActionRevise, &broken))
	result, err := NewQuestionChecker(chat).CheckQuestion(context.Background(), pending("q"), nil)
	require.NoError(t, err)
	assert.Equal(t, ActionReject, result.Action)
	assert.Contains(t, result.Reason, "not playable")
}

func TestCheckQuestionUnknownAction(t *testing.T) {
	chat := newScriptedChat().reply("evaluate_question", verdict(t, "shrug", nil))
	_, err := NewQuestionChecker(chat).CheckQuestion(context.Background(), pending("q"), nil)
	assert.ErrorContains(t, err, "unknown action")
}

func TestCheckQuestionStopsAfterMaxRevisions(t *testing.T) {
	chat := newScriptedChat()
	q := pending("q")
	q.RevisionCount = MaxRevisions

	result, err := NewQuestionChecker(chat).CheckQuestion(context.Background(), q, nil)
	require.NoError(t, err)
	assert.Equal(t, ActionReject, result.Action)
	assert.Empty(t, chat.requests)
}
