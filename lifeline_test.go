package quizshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiftyFiftyRemovesTwoWrongOptions(t *testing.T) {
	for correct := 0; correct < OptionCount; correct++ {
		for seed := uint64(1); seed <= 20; seed++ {
			got := FiftyFiftyOptions(correct, NewSeededRNG(seed))
			require.Len(t, got, 2)
			assert.NotEqual(t, got[0], got[1])
			for _, idx := range got {
				assert.NotEqual(t, correct, idx)
				assert.True(t, idx >= 0 && idx < OptionCount)
			}
		}
	}
}

func TestFiftyFiftyKeepsEveryWrongOptionSometimes(t *testing.T) {
	kept := make(map[int]bool)
	for seed := uint64(1); seed <= 60; seed++ {
		got := FiftyFiftyOptions(0, NewSeededRNG(seed))
		for _, idx := range []int{1, 2, 3} {
			if idx != got[0] && idx != got[1] {
				kept[idx] = true
			}
		}
	}
	assert.Len(t, kept, 3)
}

func TestLifelinesUse(t *testing.T) {
	q := testQuestion(TierEasy, "what", 2)
	l := NewLifelines()

	aid, ok := l.Use(LifelineHint, &q, nil)
	require.True(t, ok)
	assert.Equal(t, "hint for what", aid.Hint)
	assert.True(t, l.Used(LifelineHint))

	_, ok = l.Use(LifelineHint, &q, nil)
	assert.False(t, ok)

	aid, ok = l.Use(LifelineTrace, &q, nil)
	require.True(t, ok)
	assert.Equal(t, "echo what", aid.Trace)

	aid, ok = l.Use(LifelinePoll, &q, nil)
	require.True(t, ok)
	aid.Poll[0] = 99
	assert.Equal(t, 25, q.Poll[0])

	_, ok = l.Use(LifelineSplit, nil, nil)
	assert.False(t, ok)
	assert.False(t, l.Used(LifelineSplit))

	_, ok = l.Use("phone", &q, nil)
	assert.False(t, ok)
}

func TestHintWithoutText(t *testing.T) {
	q := testQuestion(TierEasy, "bare", 0)
	q.Hint = ""
	var l Lifelines

	aid, ok := l.Use(LifelineHint, &q, nil)
	require.True(t, ok)
	assert.Equal(t, noHintText, aid.Hint)
}

func TestDisplayKeepsOneAidPerKind(t *testing.T) {
	var d Display
	d.add(Aid{Kind: LifelineSplit, Eliminated: []int{0, 1}})
	d.add(Aid{Kind: LifelineSplit, Eliminated: []int{2, 3}})
	d.add(Aid{Kind: LifelinePoll, Poll: []int{1, 2, 3, 94}})

	assert.Len(t, d.Aids, 2)
	assert.Equal(t, []int{2, 3}, d.Eliminated())
	assert.True(t, d.IsEliminated(3))
	assert.False(t, d.IsEliminated(0))
	assert.True(t, d.PollVisible())
	assert.False(t, d.TraceVisible())
	assert.Empty(t, d.HintText())
}

func TestParseLifeline(t *testing.T) {
	for in, want := range map[string]LifelineKind{
		"split": LifelineSplit,
		"50:50": LifelineSplit,
		"docs":  LifelineHint,
		"poll":  LifelinePoll,
		"debug": LifelineTrace,
	} {
		got, ok := ParseLifeline(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseLifeline("phone-a-friend")
	assert.False(t, ok)
}
