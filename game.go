package quizshow

import (
	"sync"
	"time"
)

// NoAnswer is the selection recorded when the countdown runs out
const NoAnswer = -1

const (
	DefaultRevealDelay   = 3 * time.Second
	DefaultResolveDelay  = 2 * time.Second
	DefaultWalkAwayDelay = 1 * time.Second
)

// GameConfig carries the collaborators and timings of a Game. Zero values
// fall back to the defaults.
type GameConfig struct {
	RNG   RandomSource
	Clock Clock
	Audio Audio

	RevealDelay   time.Duration // selection -> reveal
	ResolveDelay  time.Duration // reveal -> advance or end
	WalkAwayDelay time.Duration
}

// Game is one player's run up the prize ladder. All methods are safe to call
// from several goroutines; events are applied one at a time.
type Game struct {
	mu sync.Mutex

	catalog  *Catalog
	ladder   Ladder
	selector *QuestionSelector
	rng      RandomSource
	audio    Audio
	cfg      GameConfig
	trans    transitions

	status    GameStatus
	slot      int
	question  *Question
	selected  *int
	revealed  bool
	display   Display
	lifelines Lifelines
	answered  []AnsweredQuestion

	observers []func(Snapshot)
}

// NewGame creates a game over catalog. Malformed questions are dropped; a nil
// catalog means the reference catalog.
func NewGame(catalog *Catalog, cfg GameConfig) *Game {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	catalog = catalog.Sanitized()

	if cfg.RNG == nil {
		cfg.RNG = DefaultRNG()
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock()
	}
	if cfg.Audio == nil {
		cfg.Audio = NopAudio{}
	}
	if cfg.RevealDelay <= 0 {
		cfg.RevealDelay = DefaultRevealDelay
	}
	if cfg.ResolveDelay <= 0 {
		cfg.ResolveDelay = DefaultResolveDelay
	}
	if cfg.WalkAwayDelay <= 0 {
		cfg.WalkAwayDelay = DefaultWalkAwayDelay
	}

	return &Game{
		catalog:   catalog,
		ladder:    catalog.ladder(),
		selector:  NewQuestionSelector(catalog, cfg.RNG),
		rng:       cfg.RNG,
		audio:     cfg.Audio,
		cfg:       cfg,
		trans:     transitions{clock: cfg.Clock},
		status:    StatusNotStarted,
		slot:      1,
		lifelines: NewLifelines(),
	}
}

// OnChange registers fn to receive a snapshot after every state change.
// fn runs without the game lock held.
func (g *Game) OnChange(fn func(Snapshot)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, fn)
}

// Ladder returns the prize ladder in play
func (g *Game) Ladder() Ladder {
	return g.ladder
}

func (g *Game) lock() func() {
	g.mu.Lock()
	return g.unlockAndNotify
}

func (g *Game) unlockAndNotify() {
	snap := g.snapshotLocked()
	observers := append([]func(Snapshot){}, g.observers...)
	g.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

// Start begins a new session from any state. Pending transitions, lifelines,
// the answer log and the selector memory are all reset.
func (g *Game) Start() {
	unlock := g.lock()
	defer unlock()

	g.trans.cancel()
	g.selector.Reset()
	g.lifelines = NewLifelines()
	g.answered = nil
	g.status = StatusInProgress
	g.slot = 1
	g.loadSlotLocked()

	VerboseLog("Game started, %d slots, first question %q", g.ladder.Final(), g.question.Text)
	playSound(g.audio, SoundBackground, 0.3, true)
}

// loadSlotLocked draws the question of the current slot and clears every
// per-slot field. Lifeline used flags are kept.
func (g *Game) loadSlotLocked() {
	q := g.selector.Select(g.slot)
	g.question = &q
	g.selected = nil
	g.revealed = false
	g.display = Display{}
}

// SelectAnswer locks in index for the current slot. The reveal follows after
// the reveal delay and the outcome after the resolve delay. Calls that arrive
// after a selection, after the reveal or outside a running game are ignored.
func (g *Game) SelectAnswer(index int) {
	g.mu.Lock()
	if !g.acceptsAnswerLocked(index) {
		g.mu.Unlock()
		return
	}
	unlock := g.unlockAndNotify
	defer unlock()

	selected := index
	g.selected = &selected
	playSound(g.audio, SoundFinalAnswer, 0.5, false)

	g.trans.schedule(g.cfg.RevealDelay, g.lock, g.revealLocked)
}

// TimeUp records that the countdown expired without an answer
func (g *Game) TimeUp() {
	g.SelectAnswer(NoAnswer)
}

func (g *Game) acceptsAnswerLocked(index int) bool {
	if g.status != StatusInProgress || g.question == nil {
		return false
	}
	if g.selected != nil || g.revealed || g.trans.busy() {
		return false
	}
	if index == NoAnswer {
		return true
	}
	if index < 0 || index >= len(g.question.Options) {
		return false
	}
	return !g.display.IsEliminated(index)
}

func (g *Game) revealLocked() {
	g.revealed = true
	correct := g.answerCorrectLocked()

	if correct {
		playSound(g.audio, SoundCorrect, 0.6, false)
	} else {
		playSound(g.audio, SoundWrong, 0.6, false)
	}

	g.answered = append(g.answered, AnsweredQuestion{
		Question: g.question.Text,
		Slot:     g.slot,
		Correct:  correct,
	})

	g.trans.schedule(g.cfg.ResolveDelay, g.lock, g.resolveLocked)
}

func (g *Game) resolveLocked() {
	if !g.answerCorrectLocked() {
		g.status = StatusLost
		VerboseLog("Game lost on slot %d, winnings %d", g.slot, g.winningsLocked())
		stopSounds(g.audio)
		playSound(g.audio, SoundGameOver, 0.7, false)
		return
	}

	if g.slot >= g.ladder.Final() {
		g.status = StatusWon
		VerboseLog("Game won, winnings %d", g.winningsLocked())
		stopSounds(g.audio)
		playSound(g.audio, SoundApplause, 0.7, false)
		return
	}

	g.slot++
	g.loadSlotLocked()
}

func (g *Game) answerCorrectLocked() bool {
	return g.selected != nil && g.question != nil && *g.selected == g.question.CorrectAnswer
}

// WalkAway ends the session banking the last completed slot. It is only
// honoured while no answer has been selected.
func (g *Game) WalkAway() {
	g.mu.Lock()
	if g.status != StatusInProgress || g.selected != nil || g.revealed || g.trans.busy() {
		g.mu.Unlock()
		return
	}
	unlock := g.unlockAndNotify
	defer unlock()

	playSound(g.audio, SoundFinalAnswer, 0.5, false)
	g.trans.schedule(g.cfg.WalkAwayDelay, g.lock, func() {
		g.status = StatusWalkAway
		VerboseLog("Walked away on slot %d, winnings %d", g.slot, g.winningsLocked())
		stopSounds(g.audio)
		playSound(g.audio, SoundApplause, 0.5, false)
	})
}

// UseLifeline spends kind on the current question. It returns false and
// leaves the display untouched when the lifeline is spent, the answer has
// been revealed or no game is running.
func (g *Game) UseLifeline(kind LifelineKind) (Aid, bool) {
	g.mu.Lock()
	if g.status != StatusInProgress || g.revealed {
		g.mu.Unlock()
		return Aid{}, false
	}
	aid, ok := g.lifelines.Use(kind, g.question, g.rng)
	if !ok {
		g.mu.Unlock()
		return Aid{}, false
	}
	unlock := g.unlockAndNotify
	defer unlock()

	g.display.add(aid)
	playSound(g.audio, SoundLifeline, 0.5, false)
	VerboseLog("Lifeline %s used on slot %d", kind, g.slot)
	return aid, true
}

// Stop drops any pending timed transition and leaves the state as it is.
// Used when a session is discarded mid-game.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.trans.cancel()
}

// Winnings returns the prize for the current slot and status
func (g *Game) Winnings() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winningsLocked()
}

func (g *Game) winningsLocked() int {
	return g.ladder.WinningsForOutcome(g.slot, g.status)
}

// Answered returns the answer log, one entry per revealed slot
func (g *Game) Answered() []AnsweredQuestion {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]AnsweredQuestion(nil), g.answered...)
}

// Snapshot returns a copy of the current state
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	s := Snapshot{
		Status:    g.status,
		Slot:      g.slot,
		Final:     g.ladder.Final(),
		Tier:      TierForSlot(g.slot, g.ladder.Final()),
		Revealed:  g.revealed,
		Pending:   g.trans.busy(),
		Display:   g.display.clone(),
		Lifelines: g.lifelines.State(),
		Banked:    g.ladder.Banked(g.slot),
		Winnings:  g.winningsLocked(),
		TimeLimit: TimeLimit(g.slot),
	}
	if g.question != nil {
		q := g.question.clone()
		s.Question = &q
	}
	if g.selected != nil {
		sel := *g.selected
		s.Selected = &sel
	}
	if g.revealed {
		correct := g.answerCorrectLocked()
		s.Correct = &correct
	}
	return s
}
