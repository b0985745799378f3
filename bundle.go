package vector

import (
	"time"
)

// Bundle groups the loops that run while the feature is On.
// A Scheduler runs at most once, so the controller asks the bundle for a
// fresh scheduler on every transition to On.
type Bundle struct {
	name string

	// loops holds loop system registrations
	loops []loopRegistration
}

// loopRegistration holds a loop system registration.
type loopRegistration struct {
	name     string
	system   Runnable
	interval time.Duration
	stage    Stage
}

// NewBundle creates a new bundle with the given name.
func NewBundle(name string) *Bundle {
	return &Bundle{name: name}
}

// Name returns the bundle name.
func (b *Bundle) Name() string {
	return b.name
}

// Loop registers a loop system that runs at fixed intervals.
// Interval of 0 means the loop runs every tick.
func (b *Bundle) Loop(name string, sys Runnable, interval time.Duration, stage Stage) *Bundle {
	b.loops = append(b.loops, loopRegistration{
		name:     name,
		system:   sys,
		interval: interval,
		stage:    stage,
	})
	return b
}

// Scheduler returns a new, not yet started scheduler running every loop of
// the bundle.
func (b *Bundle) Scheduler(tickRate time.Duration) *Scheduler {
	s := NewScheduler(tickRate)
	for _, reg := range b.loops {
		s.Loop(b.name+"/"+reg.name, reg.system, reg.interval, reg.stage)
	}
	return s
}
