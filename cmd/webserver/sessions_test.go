package main

import (
	"testing"
	"time"

	"quizshow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReapsIdleSessions(t *testing.T) {
	r := newRegistry(time.Minute)
	clock := &stepClock{}
	idle := newPlaySession(nil, quizshow.GameConfig{Clock: clock})
	busy := newPlaySession(nil, quizshow.GameConfig{Clock: clock})
	r.add(idle)
	r.add(busy)
	require.Equal(t, 2, r.size())

	idle.mu.Lock()
	idle.lastActive = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	assert.Equal(t, 1, r.reap(time.Now()))
	assert.Equal(t, 1, r.size())

	_, ok := r.get(idle.ID)
	assert.False(t, ok)
	_, ok = r.get(busy.ID)
	assert.True(t, ok)

	select {
	case <-idle.done:
	default:
		t.Fatal("reaped session was not closed")
	}
	assert.False(t, idle.hub.add(&client{send: make(chan any, 1)}))

	r.stop()
	assert.Zero(t, r.size())
}

func TestRegistryReaperSchedule(t *testing.T) {
	r := newRegistry(time.Minute)
	assert.Error(t, r.startReaper("every now and then"))

	require.NoError(t, r.startReaper("@every 1h"))
	r.stop()
}

func TestPlaySessionCountsOutcomeOnce(t *testing.T) {
	ps := newPlaySession(nil, quizshow.GameConfig{Clock: &stepClock{}})
	defer ps.close()

	lost := quizshow.Snapshot{Status: quizshow.StatusLost}
	ps.recordOutcome(lost)
	assert.True(t, ps.counted)
	ps.recordOutcome(lost)
	assert.True(t, ps.counted)

	ps.recordOutcome(quizshow.Snapshot{Status: quizshow.StatusInProgress})
	assert.False(t, ps.counted)
}

func TestHubDropsForSlowClients(t *testing.T) {
	h := newHub()
	slow := &client{send: make(chan any, 1)}
	require.True(t, h.add(slow))

	h.broadcast(wsMessage{Type: "tick", Remaining: 3})
	h.broadcast(wsMessage{Type: "tick", Remaining: 2})
	assert.Len(t, slow.send, 1)

	h.remove(slow)
	_, open := <-slow.send
	assert.True(t, open)
	_, open = <-slow.send
	assert.False(t, open)
	assert.Zero(t, h.count())

	h.sendTo(slow, wsMessage{Type: "state"})
}
