package quizshow

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTitle(t *testing.T) {
	assert.Equal(t, "Congratulations!", SummaryTitle(StatusWon))
	assert.Equal(t, "You Walked Away", SummaryTitle(StatusWalkAway))
	assert.Equal(t, "Game Over", SummaryTitle(StatusLost))
	assert.Empty(t, SummaryTitle(StatusInProgress))
}

func TestSummaryMessage(t *testing.T) {
	mona := &Profile{Login: "mona", Name: "Mona Lisa Octocat"}

	assert.Equal(t, "You've reached the top and won 10,000 GitHub Stickers, Mona!",
		SummaryMessage(StatusWon, 10000, mona))
	assert.Equal(t, "You decided to walk away with 200 GitHub Stickers!",
		SummaryMessage(StatusWalkAway, 200, nil))
	assert.Equal(t, "You're going home with 2,000 GitHub Stickers!",
		SummaryMessage(StatusLost, 2000, &Profile{Login: "nameless"}))
	assert.Equal(t, "Unfortunately, you didn't win any GitHub Stickers, Mona!",
		SummaryMessage(StatusLost, 0, mona))
}

func TestSummarizeWithoutProfileHasNoShareURL(t *testing.T) {
	s := Summarize(StatusLost, 0, nil, nil, "")
	assert.Empty(t, s.ShareURL)
	assert.Equal(t, "Game Over", s.Title)
	assert.NotEmpty(t, s.Image)
}

func TestShareURL(t *testing.T) {
	answered := []AnsweredQuestion{
		{Question: "What is Git?", Slot: 1, Correct: true},
		{Question: "What is a rebase?", Slot: 2, Correct: false},
	}
	s := Summarize(StatusLost, 0, answered, &Profile{Login: "mona"}, "https://github.com/acme/scores/")

	require.True(t, strings.HasPrefix(s.ShareURL, "https://github.com/acme/scores/issues/new?"))
	u, err := url.Parse(s.ShareURL)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "mona | 0 Stickers", q.Get("title"))
	body := q.Get("body")
	assert.Contains(t, body, "# My Score: 0 GitHub Stickers")
	assert.Contains(t, body, "## Questions I Answered Correctly:\n- Question 1: What is Git?")
	assert.Contains(t, body, "## Questions I Missed:\n- Question 2: What is a rebase?")
	assert.Contains(t, body, "- Final Status: lost")
}

func TestShareURLDefaultsRepo(t *testing.T) {
	link := ShareURL("", "mona", StatusWon, 10000, nil)
	assert.True(t, strings.HasPrefix(link, DefaultShareRepo+"/issues/new?"))
	assert.NotContains(t, link, "Questions+I+Missed")
}
