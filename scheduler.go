package vector

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickRate is the tick rate of a Minecraft server: 20 ticks per second.
const DefaultTickRate = 50 * time.Millisecond

// Scheduler runs registered loops on a shared fixed-rate tick.
// A Scheduler runs at most once: after Stop it cannot be restarted.
type Scheduler struct {
	// Loop management
	loops   [stageCount][]*loopState
	loopsMu sync.RWMutex

	// Execution state
	running atomic.Bool
	stopped atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Tick tracking
	tickRate   time.Duration
	tickNumber atomic.Uint64
}

// loopState tracks the state of a single loop.
type loopState struct {
	name     string
	system   Runnable
	interval time.Duration
	lastRun  time.Time
	nextRun  time.Time
}

// ShouldRun checks if the loop should run at the given time.
func (l *loopState) ShouldRun(now time.Time) bool {
	if l.interval == 0 {
		return true
	}
	return !now.Before(l.nextRun)
}

// MarkRun updates the last run time and schedules the next run.
func (l *loopState) MarkRun(now time.Time) {
	l.lastRun = now
	if l.interval > 0 {
		// Drift-free timing
		l.nextRun = l.nextRun.Add(l.interval)
		if l.nextRun.Before(now) {
			// Catch up if we're behind
			l.nextRun = now.Add(l.interval)
		}
	}
}

// NewScheduler creates a scheduler ticking every tickRate. A non-positive
// tickRate selects DefaultTickRate.
func NewScheduler(tickRate time.Duration) *Scheduler {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &Scheduler{
		tickRate: tickRate,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Loop registers a system that runs every interval in the given stage.
// An interval of 0 runs the system every tick.
func (s *Scheduler) Loop(name string, sys Runnable, interval time.Duration, stage Stage) {
	s.loopsMu.Lock()
	defer s.loopsMu.Unlock()

	s.loops[stage] = append(s.loops[stage], &loopState{
		name:     name,
		system:   sys,
		interval: interval,
		nextRun:  time.Now(),
	})
}

// Start begins the scheduler's tick loop.
func (s *Scheduler) Start() {
	if s.stopped.Load() || s.running.Swap(true) {
		return
	}
	go s.tickLoop()
}

// Stop shuts the scheduler down. It blocks until a tick that is in progress
// has returned; no tick starts after Stop returns.
func (s *Scheduler) Stop() {
	if s.stopped.Swap(true) || !s.running.Swap(false) {
		return
	}
	close(s.stopCh)
	<-s.doneCh
}

// Running reports whether the tick loop is active.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// TickNumber returns the number of ticks executed so far.
func (s *Scheduler) TickNumber() uint64 {
	return s.tickNumber.Load()
}

// tickLoop is the main scheduler loop.
func (s *Scheduler) tickLoop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

// tick executes one scheduler tick.
func (s *Scheduler) tick(now time.Time) {
	if !s.running.Load() {
		return
	}
	s.tickNumber.Add(1)

	s.loopsMu.RLock()
	defer s.loopsMu.RUnlock()

	for stage := Before; stage < stageCount; stage++ {
		for _, loop := range s.loops[stage] {
			if !loop.ShouldRun(now) {
				continue
			}
			s.run(loop)
			loop.MarkRun(now)
		}
	}
}

// run executes a loop with panic recovery. A panicking loop is logged and
// keeps its schedule.
func (s *Scheduler) run(loop *loopState) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("vector: panic in loop %s: %v", loop.name, r)
			slog.Error(err.Error(), "stack", string(debug.Stack()))
		}
	}()
	loop.system.Run()
}
