package quizshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAudioForwardsCues(t *testing.T) {
	a := NewEventAudio(2)

	require.NoError(t, a.Play(SoundCorrect, 0.6, false))
	require.NoError(t, a.StopAll())

	cue := <-a.C
	assert.Equal(t, SoundCorrect, cue.Sound)
	assert.Equal(t, "correct.mp3", cue.File)
	assert.Equal(t, 0.6, cue.Volume)
	assert.True(t, (<-a.C).Stop)
}

func TestEventAudioDropsWhenFull(t *testing.T) {
	a := NewEventAudio(1)
	require.NoError(t, a.Play(SoundLifeline, 0.5, false))
	assert.Error(t, a.Play(SoundLifeline, 0.5, false))
	assert.ErrorIs(t, a.Play("kazoo", 1, false), ErrUnknownSound)
}

func TestEverySoundHasAFile(t *testing.T) {
	for _, s := range []Sound{SoundBackground, SoundFinalAnswer, SoundCorrect, SoundWrong,
		SoundLifeline, SoundTimerTick, SoundGameOver, SoundApplause} {
		assert.NotEmpty(t, SoundFiles[s], s)
	}
}
