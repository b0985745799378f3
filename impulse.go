package vector

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoScaling is returned when the velocity modifier cannot scale a pull
// vector.
var ErrNoScaling = errors.New("vector: velocity modifier must be greater than 0")

// ImpulseVelocity converts the pull vector v into a velocity. Short vectors,
// those with len(v) < maxSpeed/modifier, are scaled by modifier; longer ones are
// pointed the same way with length maxSpeed. The resulting speed is
// therefore min(len(v)·modifier, maxSpeed).
func ImpulseVelocity(v mgl64.Vec3, modifier, maxSpeed float64) (mgl64.Vec3, error) {
	if !(modifier > 0) {
		return mgl64.Vec3{}, ErrNoScaling
	}
	if v.Len() < maxSpeed/modifier {
		return v.Mul(modifier), nil
	}
	dir, err := Normalize(v)
	if err != nil {
		return mgl64.Vec3{}, nil
	}
	return dir.Mul(maxSpeed), nil
}

// Impulser pulls selected entities toward the aim point of their user.
type Impulser struct {
	registry *Registry
	tunables *TunableStore
}

// NewImpulser creates an impulser.
func NewImpulser(registry *Registry, tunables *TunableStore) *Impulser {
	return &Impulser{registry: registry, tunables: tunables}
}

// Apply sets the velocity of the entity u has selected so that it moves
// toward u's aim point. If consume is true the selection is dropped
// afterwards.
//
// Apply returns false without error when u has no usable selection; callers
// use that to fall back to selecting a new entity. A selection whose entity
// is not in u's world anymore is dropped and also reported as false.
func (i *Impulser) Apply(w World, u User, consume bool) (bool, error) {
	id := u.Handle().UUID()
	sel, ok := i.registry.Get(id)
	if !ok {
		return false, nil
	}
	e, ok := w.Entity(sel.Target)
	if !ok {
		i.registry.CompareAndRemove(id, sel.Target.UUID())
		return false, nil
	}

	tun := i.tunables.Load()
	aim, err := AimPoint(w, u.EyePosition(), u.Direction(), tun.VisibilityLength)
	if err != nil {
		return false, err
	}
	vel, err := ImpulseVelocity(aim.Sub(e.Position()), tun.VelocityModifier, tun.MaxVelocity)
	if err != nil {
		return false, err
	}
	e.SetVelocity(vel)

	if consume {
		i.registry.CompareAndRemove(id, sel.Target.UUID())
	}
	return true, nil
}
