package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"quizshow"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// PlaySession is one browser's game, held in memory and found through the
// cookie session.
type PlaySession struct {
	ID        string
	CreatedAt time.Time

	game      *quizshow.Game
	countdown *quizshow.Countdown
	audio     *quizshow.EventAudio
	hub       *hub
	done      chan struct{}

	mu         sync.Mutex
	lastActive time.Time
	profile    *quizshow.Profile
	counted    bool
}

func newPlaySession(catalog *quizshow.Catalog, gcfg quizshow.GameConfig) *PlaySession {
	audio := quizshow.NewEventAudio(64)
	gcfg.Audio = audio

	ps := &PlaySession{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		game:       quizshow.NewGame(catalog, gcfg),
		audio:      audio,
		hub:        newHub(),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}

	ps.countdown = quizshow.NewCountdown(gcfg.Clock, audio, ps.game.TimeUp)
	ps.countdown.OnTick(func(remaining int) {
		_, total := ps.countdown.Remaining()
		ps.hub.broadcast(wsMessage{Type: "tick", Remaining: remaining, Total: total})
	})

	ps.game.OnChange(func(s quizshow.Snapshot) {
		ps.countdown.Follow(s)
		ps.recordOutcome(s)
		masked := s.Masked()
		ps.hub.broadcast(wsMessage{Type: "state", State: &masked})
	})

	go ps.forwardCues()
	return ps
}

func (ps *PlaySession) forwardCues() {
	for {
		select {
		case cue := <-ps.audio.C:
			ps.hub.broadcast(wsMessage{Type: "sound", Cue: &cue})
		case <-ps.done:
			return
		}
	}
}

// recordOutcome counts each finished game once
func (ps *PlaySession) recordOutcome(s quizshow.Snapshot) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !s.Status.Terminal() {
		ps.counted = false
		return
	}
	if ps.counted {
		return
	}
	ps.counted = true
	gamesFinished.WithLabelValues(string(s.Status)).Inc()
	winnings.Observe(float64(s.Winnings))
	quizshow.VerboseLog("Session %s finished: %s with %d", ps.ID, s.Status, s.Winnings)
}

func (ps *PlaySession) touch() {
	ps.mu.Lock()
	ps.lastActive = time.Now()
	ps.mu.Unlock()
}

func (ps *PlaySession) idleSince() time.Time {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.lastActive
}

func (ps *PlaySession) Profile() *quizshow.Profile {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.profile
}

func (ps *PlaySession) SetProfile(p *quizshow.Profile) {
	ps.mu.Lock()
	ps.profile = p
	ps.mu.Unlock()
}

func (ps *PlaySession) close() {
	ps.game.Stop()
	ps.countdown.Stop()
	close(ps.done)
	ps.hub.closeAll()
}

// registry holds the live play sessions
type registry struct {
	mu       sync.RWMutex
	sessions map[string]*PlaySession
	timeout  time.Duration
	cron     *cron.Cron
}

func newRegistry(timeout time.Duration) *registry {
	return &registry{
		sessions: make(map[string]*PlaySession),
		timeout:  timeout,
	}
}

func (r *registry) add(ps *PlaySession) {
	r.mu.Lock()
	r.sessions[ps.ID] = ps
	n := len(r.sessions)
	r.mu.Unlock()
	activeSessions.Set(float64(n))
}

// get returns the session and marks it active
func (r *registry) get(id string) (*PlaySession, bool) {
	r.mu.RLock()
	ps, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		ps.touch()
	}
	return ps, ok
}

func (r *registry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// reap removes sessions idle since before now minus the timeout and returns
// how many were removed.
func (r *registry) reap(now time.Time) int {
	cutoff := now.Add(-r.timeout)

	var stale []*PlaySession
	r.mu.Lock()
	for id, ps := range r.sessions {
		if ps.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			stale = append(stale, ps)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, ps := range stale {
		ps.close()
	}
	activeSessions.Set(float64(n))
	return len(stale)
}

// startReaper sweeps idle sessions on schedule
func (r *registry) startReaper(schedule string) error {
	r.cron = cron.New()
	_, err := r.cron.AddFunc(schedule, func() {
		if n := r.reap(time.Now()); n > 0 {
			log.Printf("Removed %d idle play sessions", n)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session reaper: %w", err)
	}
	r.cron.Start()
	return nil
}

func (r *registry) stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*PlaySession)
	r.mu.Unlock()

	for _, ps := range sessions {
		ps.close()
	}
	activeSessions.Set(0)
}
