package quizshow

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// manualClock fires callbacks only when a test advances it
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock *manualClock
	at    time.Duration
	seq   int
	f     func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.done
	t.done = true
	return was
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, running due callbacks in order. Callbacks
// run without the clock lock and may schedule more callbacks.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		next := c.nextLocked(target)
		if next == nil {
			break
		}
		next.done = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *manualClock) nextLocked(limit time.Duration) *manualTimer {
	var due []*manualTimer
	live := c.timers[:0]
	for _, t := range c.timers {
		if t.done {
			continue
		}
		live = append(live, t)
		if t.at <= limit {
			due = append(due, t)
		}
	}
	c.timers = live
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

// Pending returns how many callbacks are still scheduled
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.done {
			n++
		}
	}
	return n
}

type playedSound struct {
	Sound  Sound
	Volume float64
	Loop   bool
}

type recordingAudio struct {
	mu     sync.Mutex
	played []playedSound
	stops  int
	fail   bool
}

func (a *recordingAudio) Play(sound Sound, volume float64, loop bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return errors.New("no audio device")
	}
	a.played = append(a.played, playedSound{sound, volume, loop})
	return nil
}

func (a *recordingAudio) StopAll() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stops++
	return nil
}

func (a *recordingAudio) sounds() []Sound {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Sound, len(a.played))
	for i, p := range a.played {
		out[i] = p.Sound
	}
	return out
}

func (a *recordingAudio) count(s Sound) int {
	n := 0
	for _, got := range a.sounds() {
		if got == s {
			n++
		}
	}
	return n
}

// scriptedChat answers tool calls from per-tool queues of JSON arguments
type scriptedChat struct {
	mu       sync.Mutex
	replies  map[string][]string
	errs     map[string][]error
	requests []openai.ChatCompletionRequest
}

func newScriptedChat() *scriptedChat {
	return &scriptedChat{
		replies: make(map[string][]string),
		errs:    make(map[string][]error),
	}
}

func (c *scriptedChat) reply(tool string, args ...string) *scriptedChat {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies[tool] = append(c.replies[tool], args...)
	return c
}

func (c *scriptedChat) fail(tool string, err error) *scriptedChat {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs[tool] = append(c.errs[tool], err)
	return c
}

func (c *scriptedChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)

	if len(req.Tools) == 0 || req.Tools[0].Function == nil {
		return openai.ChatCompletionResponse{}, errors.New("request has no tool")
	}
	tool := req.Tools[0].Function.Name

	if errs := c.errs[tool]; len(errs) > 0 {
		c.errs[tool] = errs[1:]
		return openai.ChatCompletionResponse{}, errs[0]
	}
	queue := c.replies[tool]
	if len(queue) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("no scripted reply for " + tool)
	}
	c.replies[tool] = queue[1:]

	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleAssistant,
				ToolCalls: []openai.ToolCall{{
					ID:   "call-1",
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tool,
						Arguments: queue[0],
					},
				}},
			},
		}},
	}, nil
}

func (c *scriptedChat) calls(tool string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, req := range c.requests {
		if len(req.Tools) > 0 && req.Tools[0].Function != nil && req.Tools[0].Function.Name == tool {
			n++
		}
	}
	return n
}

func testQuestion(tier Tier, text string, correct int) Question {
	return Question{
		Tier:          tier,
		Text:          text,
		Options:       []string{"one", "two", "three", "four"},
		CorrectAnswer: correct,
		Hint:          "hint for " + text,
		DebugCode:     "echo " + text,
		Poll:          []int{25, 25, 25, 25},
	}
}

func newTestGame(t *testing.T, catalog *Catalog) (*Game, *manualClock, *recordingAudio) {
	t.Helper()
	clock := &manualClock{}
	audio := &recordingAudio{}
	g := NewGame(catalog, GameConfig{
		RNG:   NewSeededRNG(7),
		Clock: clock,
		Audio: audio,
	})
	return g, clock, audio
}

// answer selects the correct or a wrong option and runs the reveal and the
// resolve transitions.
func answer(t *testing.T, g *Game, clock *manualClock, correct bool) {
	t.Helper()
	s := g.Snapshot()
	if s.Question == nil {
		t.Fatalf("no question on slot %d", s.Slot)
	}
	index := s.Question.CorrectAnswer
	if !correct {
		index = (index + 1) % OptionCount
	}
	g.SelectAnswer(index)
	clock.Advance(DefaultRevealDelay)
	clock.Advance(DefaultResolveDelay)
}
