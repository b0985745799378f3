package vector

import (
	"fmt"
	"sync/atomic"
)

// Tunables is the hot-reloadable parameter set. A published Tunables value
// is never modified; a reload publishes a new one.
type Tunables struct {
	// Item is the identifier of the item that triggers the feature,
	// e.g. "minecraft:blaze_rod".
	Item string
	// BothHands splits selecting (use) and pulling (swing) across both
	// mouse buttons.
	BothHands bool
	// SingleUse drops the selection after one impulse.
	SingleUse bool
	// VisibilityLength is how far a user can aim, in blocks.
	VisibilityLength float64
	// VelocityModifier scales the pull vector.
	VelocityModifier float64
	// MaxVelocity caps the resulting speed.
	MaxVelocity float64
}

// DefaultTunables mirrors the shipped config.yml.
func DefaultTunables() Tunables {
	return Tunables{
		Item:             "minecraft:blaze_rod",
		VisibilityLength: 50,
		VelocityModifier: 0.3,
		MaxVelocity:      5,
	}
}

// String returns a single-line summary, used in log output.
func (t Tunables) String() string {
	return fmt.Sprintf("item=%s both-hands=%t single-time=%t visibility=%g modifier=%g max=%g",
		t.Item, t.BothHands, t.SingleUse, t.VisibilityLength, t.VelocityModifier, t.MaxVelocity)
}

// TunableStore publishes Tunables snapshots. A single writer stores, any
// number of readers load without locking.
type TunableStore struct {
	p atomic.Pointer[Tunables]
}

// NewTunableStore creates a store holding t.
func NewTunableStore(t Tunables) *TunableStore {
	s := &TunableStore{}
	s.Store(t)
	return s
}

// Load returns the latest published snapshot.
func (s *TunableStore) Load() Tunables {
	if t := s.p.Load(); t != nil {
		return *t
	}
	return DefaultTunables()
}

// Store publishes t.
func (s *TunableStore) Store(t Tunables) {
	s.p.Store(&t)
}
