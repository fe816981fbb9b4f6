package quizshow

import "time"

// Clock schedules delayed callbacks. The game uses it for every timed
// transition so tests can drive time by hand.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// Stopper cancels a scheduled callback
type Stopper interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by time.AfterFunc
func RealClock() Clock { return realClock{} }

// transitions allows exactly one pending timed transition. Every reset bumps
// the epoch, so a callback that already fired but has not run yet is dropped.
type transitions struct {
	clock   Clock
	epoch   uint64
	pending Stopper
}

// schedule arms fn after d. It returns false if another transition is pending.
// fn runs with the lock returned by lock held.
func (t *transitions) schedule(d time.Duration, lock func() func(), fn func()) bool {
	if t.pending != nil {
		return false
	}
	epoch := t.epoch
	t.pending = t.clock.AfterFunc(d, func() {
		unlock := lock()
		defer unlock()
		if t.epoch != epoch {
			return
		}
		t.pending = nil
		fn()
	})
	return true
}

// busy reports whether a transition is waiting to run
func (t *transitions) busy() bool {
	return t.pending != nil
}

// cancel drops any pending transition
func (t *transitions) cancel() {
	t.epoch++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
