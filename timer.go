package quizshow

import (
	"sync"
	"time"
)

// TimeLimit returns the answer time in seconds for slot. Slots past the
// second checkpoint get the longer limit.
func TimeLimit(slot int) int {
	if slot > 10 {
		return 40
	}
	return 20
}

// Countdown counts the answer time of one slot down to zero, one second per
// tick, and calls onTimeUp once when it runs out.
type Countdown struct {
	mu sync.Mutex

	clock    Clock
	audio    Audio
	onTimeUp func()
	onTick   func(remaining int)

	slot    int
	total   int
	left    int
	paused  bool
	stopped bool

	gen  uint64
	tick Stopper
}

// NewCountdown creates a stopped countdown
func NewCountdown(clock Clock, audio Audio, onTimeUp func()) *Countdown {
	if clock == nil {
		clock = RealClock()
	}
	if audio == nil {
		audio = NopAudio{}
	}
	return &Countdown{
		clock:    clock,
		audio:    audio,
		onTimeUp: onTimeUp,
		stopped:  true,
	}
}

// OnTick registers fn to receive the remaining seconds after every tick
func (c *Countdown) OnTick(fn func(remaining int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = fn
}

// Restart resets the countdown to the full limit of slot and starts it
// unless it is paused.
func (c *Countdown) Restart(slot int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disarm()
	c.slot = slot
	c.total = TimeLimit(slot)
	c.left = c.total
	c.stopped = false
	if !c.paused {
		c.arm()
	}
}

// SetPaused freezes or resumes the countdown. The remaining time is kept.
func (c *Countdown) SetPaused(paused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused == paused {
		return
	}
	c.paused = paused
	if paused {
		c.disarm()
		return
	}
	if !c.stopped {
		c.arm()
	}
}

// Stop halts the countdown without signalling
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarm()
	c.stopped = true
}

// Remaining returns the seconds left and the full limit
func (c *Countdown) Remaining() (left, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.total
}

// Follow keeps the countdown in step with a game. It restarts on a new slot,
// pauses while an answer is pending and stops once the game is over.
func (c *Countdown) Follow(s Snapshot) {
	if s.Status != StatusInProgress {
		c.Stop()
		return
	}

	c.mu.Lock()
	restart := c.stopped || c.slot != s.Slot
	c.mu.Unlock()

	c.SetPaused(!s.Playing())
	if restart && s.Playing() {
		c.Restart(s.Slot)
	}
}

func (c *Countdown) arm() {
	c.gen++
	gen := c.gen
	c.tick = c.clock.AfterFunc(time.Second, func() { c.onSecond(gen) })
}

func (c *Countdown) disarm() {
	c.gen++
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
}

func (c *Countdown) onSecond(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.paused || c.stopped {
		c.mu.Unlock()
		return
	}

	prev := c.left
	if prev <= 6 && prev > 1 {
		playSound(c.audio, SoundTimerTick, 0.3, false)
	}

	if prev <= 1 {
		c.left = 0
		c.stopped = true
		c.tick = nil
		fire := c.onTimeUp
		c.mu.Unlock()
		if fire != nil {
			fire()
		}
		return
	}

	c.left--
	c.arm()
	left, tick := c.left, c.onTick
	c.mu.Unlock()

	if tick != nil {
		tick(left)
	}
}
