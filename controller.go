package vector

import (
	"context"
	"log/slog"
	"sync"

	"github.com/maniartech/signals"
)

// Status is the process-wide feature status.
type Status int

const (
	Off Status = iota
	On
)

// String returns "On" or "Off".
func (s Status) String() string {
	if s == On {
		return "On"
	}
	return "Off"
}

// Controller owns the feature status and performs the entry and exit actions
// of its two states.
//
// Entering On starts a fresh Scheduler and installs the interact hook.
// Leaving On uninstalls the hook, stops the scheduler and clears the
// registry. Stop waits for a tick that is in progress, so no effect is drawn
// once a transition to Off has returned.
type Controller struct {
	// mu serialises transitions.
	mu     sync.Mutex
	status Status
	sched  *Scheduler

	// gate guards hook. Interact calls hold it for reading, so a transition
	// waits for calls that already passed the hook check.
	gate sync.RWMutex
	hook bool

	registry *Registry
	build    func() *Scheduler

	// Changed is emitted after every transition.
	Changed signals.Signal[Status]
}

// NewController creates a controller in the Off state. build is called on
// every transition to On and must return a scheduler with its loops
// registered but not yet started.
func NewController(registry *Registry, build func() *Scheduler) *Controller {
	return &Controller{
		registry: registry,
		build:    build,
		Changed:  signals.New[Status](),
	}
}

// Status returns the current status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Toggle switches to the other status and returns the new one.
func (c *Controller) Toggle() Status {
	c.mu.Lock()
	next := On
	if c.status == On {
		next = Off
	}
	c.transition(next)
	c.mu.Unlock()

	c.Changed.Emit(context.Background(), next)
	return next
}

// Set moves to status s. It reports whether the status changed.
func (c *Controller) Set(s Status) bool {
	c.mu.Lock()
	if c.status == s {
		c.mu.Unlock()
		return false
	}
	c.transition(s)
	c.mu.Unlock()

	c.Changed.Emit(context.Background(), s)
	return true
}

// transition runs the exit action of the current state and the entry action
// of next. Caller must hold mu.
func (c *Controller) transition(next Status) {
	switch next {
	case On:
		c.sched = c.build()
		c.sched.Start()
		c.setHook(true)
	case Off:
		c.setHook(false)
		if c.sched != nil {
			c.sched.Stop()
			c.sched = nil
		}
		c.registry.Clear()
	}
	c.status = next
	slog.Info("vector: status changed", "status", next.String())
}

func (c *Controller) setHook(installed bool) {
	c.gate.Lock()
	c.hook = installed
	c.gate.Unlock()
}

// WithHook runs fn if the interact hook is installed and reports whether it
// did.
func (c *Controller) WithHook(fn func()) bool {
	c.gate.RLock()
	defer c.gate.RUnlock()
	if !c.hook {
		return false
	}
	fn()
	return true
}

// Close moves to Off.
func (c *Controller) Close() error {
	c.Set(Off)
	return nil
}
