package quizshow

import (
	"errors"
	"log"
)

// Sound names an audio cue
type Sound string

const (
	SoundBackground  Sound = "backgroundMusic"
	SoundFinalAnswer Sound = "finalAnswer"
	SoundCorrect     Sound = "correctAnswer"
	SoundWrong       Sound = "wrongAnswer"
	SoundLifeline    Sound = "lifeline"
	SoundTimerTick   Sound = "timerTick"
	SoundGameOver    Sound = "gameOver"
	SoundApplause    Sound = "applause"
)

// SoundFiles maps every cue to its asset file name
var SoundFiles = map[Sound]string{
	SoundBackground:  "background.mp3",
	SoundCorrect:     "correct.mp3",
	SoundWrong:       "wrong.mp3",
	SoundFinalAnswer: "final-answer.mp3",
	SoundLifeline:    "lifeline.mp3",
	SoundTimerTick:   "timer.mp3",
	SoundGameOver:    "game-over.mp3",
	SoundApplause:    "applause.mp3",
}

// ErrUnknownSound is returned for cues without an asset
var ErrUnknownSound = errors.New("unknown sound")

// Audio plays sound cues. Implementations may fail; the game never lets an
// audio error reach the caller.
type Audio interface {
	Play(sound Sound, volume float64, loop bool) error
	StopAll() error
}

// NopAudio discards every cue
type NopAudio struct{}

func (NopAudio) Play(Sound, float64, bool) error { return nil }
func (NopAudio) StopAll() error                  { return nil }

// Cue is one audio instruction forwarded to a client
type Cue struct {
	Sound  Sound   `json:"sound"`
	File   string  `json:"file,omitempty"`
	Volume float64 `json:"volume"`
	Loop   bool    `json:"loop,omitempty"`
	Stop   bool    `json:"stop,omitempty"`
}

// EventAudio forwards cues to a channel, for a browser or terminal to play.
// A full channel drops the cue.
type EventAudio struct {
	C chan Cue
}

// NewEventAudio creates an EventAudio with a buffer of size cues
func NewEventAudio(size int) *EventAudio {
	return &EventAudio{C: make(chan Cue, size)}
}

func (a *EventAudio) Play(sound Sound, volume float64, loop bool) error {
	file, ok := SoundFiles[sound]
	if !ok {
		return ErrUnknownSound
	}
	return a.send(Cue{Sound: sound, File: file, Volume: volume, Loop: loop})
}

func (a *EventAudio) StopAll() error {
	return a.send(Cue{Stop: true})
}

func (a *EventAudio) send(c Cue) error {
	select {
	case a.C <- c:
		return nil
	default:
		return errors.New("audio queue full")
	}
}

// playSound swallows audio failures at the engine boundary
func playSound(a Audio, sound Sound, volume float64, loop bool) {
	if a == nil {
		return
	}
	if err := a.Play(sound, volume, loop); err != nil {
		log.Printf("Couldn't play %s: %v", sound, err)
	}
}

func stopSounds(a Audio) {
	if a == nil {
		return
	}
	if err := a.StopAll(); err != nil {
		log.Printf("Couldn't stop sounds: %v", err)
	}
}
