// Package timer provides the per-session turn deadline. Every arming gets a
// monotonically increasing generation number; a firing carrying anything but
// the current generation is ignored, so a stale deadline can never resolve a
// move that already happened.
package timer

import (
	"sync"
	"time"
)

// TimeoutFunc receives the session id and the generation of the arming that
// fired. The callback runs on the timer goroutine.
type TimeoutFunc func(gameID string, generation uint64)

type arming struct {
	generation uint64
	timer      *time.Timer
}

// Scheduler keeps one single-shot deadline per session.
type Scheduler struct {
	mu        sync.Mutex
	duration  time.Duration
	onTimeout TimeoutFunc
	armed     map[string]*arming
	nextGen   uint64
}

func NewScheduler(duration time.Duration, onTimeout TimeoutFunc) *Scheduler {
	return &Scheduler{
		duration:  duration,
		onTimeout: onTimeout,
		armed:     make(map[string]*arming),
	}
}

// Arm schedules the deadline for the session, voiding any earlier arming.
// It returns the new generation.
func (that *Scheduler) Arm(gameID string) uint64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	if prev, ok := that.armed[gameID]; ok {
		prev.timer.Stop()
	}

	that.nextGen++
	generation := that.nextGen

	that.armed[gameID] = &arming{
		generation: generation,
		timer: time.AfterFunc(that.duration, func() {
			that.fire(gameID, generation)
		}),
	}

	return generation
}

// Cancel voids the current arming for the session. Idempotent.
func (that *Scheduler) Cancel(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if prev, ok := that.armed[gameID]; ok {
		prev.timer.Stop()
		delete(that.armed, gameID)
	}
}

// Generation returns the current arming's generation, if the session has one.
func (that *Scheduler) Generation(gameID string) (uint64, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.armed[gameID]
	if !ok {
		return 0, false
	}

	return current.generation, true
}

func (that *Scheduler) fire(gameID string, generation uint64) {
	that.mu.Lock()

	current, ok := that.armed[gameID]
	if !ok || current.generation != generation {
		that.mu.Unlock()
		return
	}

	delete(that.armed, gameID)
	that.mu.Unlock()

	// Callback runs without the scheduler lock so it may re-arm freely.
	that.onTimeout(gameID, generation)
}
