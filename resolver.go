package vector

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// SearchRadius is how far ahead of the eye entities are searched for.
	SearchRadius = 20.0
	// EntityMargin is how much each bounding box is grown before testing.
	EntityMargin = 5.0
)

// AimPoint returns the point a viewer at eye looking along dir is aiming at.
// If a solid block lies within length, the aim point is the centre of the
// cell in front of the struck face. Otherwise it is eye + dir·length.
func AimPoint(src BlockSource, eye, dir mgl64.Vec3, length float64) (mgl64.Vec3, error) {
	d, err := Normalize(dir)
	if err != nil {
		return eye, err
	}
	if hit, ok := RayTraceBlock(src, eye, d, length); ok {
		return hit.AimPoint(), nil
	}
	return eye.Add(d.Mul(length)), nil
}

// Resolver finds entities a user is looking at and records them.
type Resolver struct {
	registry *Registry
	tunables *TunableStore
}

// NewResolver creates a resolver that records hits in registry.
func NewResolver(registry *Registry, tunables *TunableStore) *Resolver {
	return &Resolver{registry: registry, tunables: tunables}
}

// AimPoint returns u's aim point using the current visibility length.
func (r *Resolver) AimPoint(w World, u User) (mgl64.Vec3, error) {
	return AimPoint(w, u.EyePosition(), u.Direction(), r.tunables.Load().VisibilityLength)
}

// ResolveEntity selects the entity u is looking at. Every entity in w other
// than u is tested; of those whose grown box intersects the search ray, the
// one closest to the eye wins, the first one found on a tie. Found entities
// replace u's selection, otherwise the registry is left untouched.
//
// The scan is O(entities in world) by intent: ties resolve to the first
// entity at minimum distance in world iteration order.
func (r *Resolver) ResolveEntity(w World, u User) (Entity, bool) {
	eye := u.EyePosition()
	dir, err := Normalize(u.Direction())
	if err != nil {
		return nil, false
	}
	end := eye.Add(dir.Mul(SearchRadius))
	self := u.Handle().UUID()

	var (
		found Entity
		best  = math.Inf(1)
	)
	for e := range w.Entities() {
		if e.Handle().UUID() == self {
			continue
		}
		if _, ok := RayTraceBounds(e.BBox().Grow(EntityMargin), eye, end); !ok {
			continue
		}
		if d := Distance(eye, e.Position()); d < best {
			best, found = d, e
		}
	}
	if found == nil {
		return nil, false
	}
	r.registry.Put(u.Handle(), found.Handle())
	return found, true
}
